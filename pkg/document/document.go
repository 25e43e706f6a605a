package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidElementType = errors.New("invalid element type")
	ErrInvalidPage        = errors.New("invalid page number")
)

type ElementType string

const (
	ElementTypeText  ElementType = "text"
	ElementTypeImage ElementType = "image"
)

func ParseElementType(val string) (ElementType, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case string(ElementTypeText):
		return ElementTypeText, nil

	case string(ElementTypeImage):
		return ElementTypeImage, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidElementType, val)
}

func (t ElementType) MarshalJSON() ([]byte, error) {
	if _, err := ParseElementType(string(t)); err != nil {
		return nil, err
	}

	return json.Marshal(string(t))
}

func (t *ElementType) UnmarshalJSON(data []byte) error {
	var val string

	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	result, err := ParseElementType(val)

	if err != nil {
		return err
	}

	*t = result
	return nil
}

type Element struct {
	Type ElementType `json:"type"`

	Content     string `json:"content"`
	Description string `json:"description"`
}

// Validate rejects elements without a known type, including ones decoded from null.
func (e Element) Validate() error {
	_, err := ParseElementType(string(e.Type))
	return err
}

func TextElement(text string) Element {
	return Element{
		Type:    ElementTypeText,
		Content: text,
	}
}

func ImageElement(content, description string) Element {
	return Element{
		Type: ElementTypeImage,

		Content:     content,
		Description: description,
	}
}

type Page struct {
	Page     int       `json:"page"`
	Elements []Element `json:"elements"`
}

func (p *Page) UnmarshalJSON(data []byte) error {
	type page Page

	var result page

	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	if result.Elements == nil {
		result.Elements = []Element{}
	}

	*p = Page(result)

	return p.Validate()
}

func (p Page) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}

	for i, e := range p.Elements {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("page %d element %d: %w", p.Page, i, err)
		}
	}

	return nil
}

// Image is an image extracted from the document, Data holds the base64 encoded payload.
type Image struct {
	Data        string
	ContentType string
}

func (i Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + i.Data
}

// Images maps zero-based page indexes to the images found on that page, in document order.
type Images map[int][]Image
