package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/adrianliechti/docparse/pkg/client"
	"github.com/adrianliechti/docparse/pkg/document"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")

	bucketFlag := flag.String("bucket", "", "source bucket")
	pathFlag := flag.String("path", "", "object path of the pdf")

	jsonFlag := flag.Bool("json", false, "print raw json")

	flag.Parse()

	if *bucketFlag == "" || *pathFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	pages, err := c.Parses.New(ctx, client.ParseRequest{
		Bucket:   *bucketFlag,
		BlobPath: *pathFlag,
	})

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(pages)

		return
	}

	for _, page := range pages {
		fmt.Printf("# Page %d\n\n", page.Page)

		for _, e := range page.Elements {
			switch e.Type {
			case document.ElementTypeImage:
				fmt.Printf("[image] %s (%s)\n\n", e.Description, summarize(e.Content))

			default:
				fmt.Println(e.Content)
				fmt.Println()
			}
		}
	}
}

func summarize(content string) string {
	if content == "" {
		return "missing"
	}

	if i := strings.Index(content, ","); strings.HasPrefix(content, "data:") && i > 0 {
		return fmt.Sprintf("%s, %d bytes", content[5:i], base64.StdEncoding.DecodedLen(len(content)-i-1))
	}

	return content
}
