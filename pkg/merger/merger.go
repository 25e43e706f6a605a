package merger

import (
	"strings"

	"github.com/adrianliechti/docparse/pkg/document"
)

// Merge fills empty image elements with extracted images of the same page, first come first
// served. Other elements are copied unchanged and the input pages are not modified.
func Merge(pages []document.Page, images document.Images) []document.Page {
	result := make([]document.Page, 0, len(pages))

	queues := make(map[int][]document.Image, len(images))

	for index, list := range images {
		queues[index] = list
	}

	for _, page := range pages {
		index := page.Page - 1

		elements := make([]document.Element, 0, len(page.Elements))

		for _, e := range page.Elements {
			queue := queues[index]

			if e.Type == document.ElementTypeImage && strings.TrimSpace(e.Content) == "" && len(queue) > 0 {
				e.Content = queue[0].DataURI()
				queues[index] = queue[1:]
			}

			elements = append(elements, e)
		}

		result = append(result, document.Page{
			Page:     page.Page,
			Elements: elements,
		})
	}

	return result
}
