package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"sort"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/languages"
)

type TemplateData struct {
	Sections []Section
}

type Section struct {
	Language string
	Examples []Example
}

type Example struct {
	Name        string
	Description string
	Code        string
	Markup      string
	Relevance   int
	Detected    string
}

func main() {
	tests, err := hilite.GetTests()
	if err != nil {
		log.Fatal(err)
	}

	examplesByLanguage := map[string][]Example{}

	for name, tc := range tests {
		if tc.Error != "" || tc.Benchmark || tc.Illegal {
			continue
		}

		h, err := languages.Default()
		if err != nil {
			log.Fatal(err)
		}

		result, err := tc.Run(h)
		if err != nil {
			log.Printf("Error highlighting %s: %v", name, err)
			continue
		}

		language := tc.Language
		if tc.Auto {
			language = "auto"
		}

		examplesByLanguage[language] = append(examplesByLanguage[language], Example{
			Name:        name,
			Description: tc.Description,
			Code:        tc.Code,
			Markup:      result.Value,
			Relevance:   result.Relevance,
			Detected:    result.Language,
		})
	}

	templateContent, err := os.ReadFile("template.html")
	if err != nil {
		log.Fatal(err)
	}

	tmpl := template.Must(template.New("html").Funcs(template.FuncMap{
		"formatMarkup": formatMarkup,
		"dict":         dict,
	}).Parse(string(templateContent)))

	templateData := TemplateData{}

	for language, examples := range examplesByLanguage {
		sort.Slice(examples, func(i, j int) bool {
			return examples[i].Name < examples[j].Name
		})

		templateData.Sections = append(templateData.Sections, Section{
			Language: language,
			Examples: examples,
		})
	}

	sort.Slice(templateData.Sections, func(i, j int) bool {
		return templateData.Sections[i].Language < templateData.Sections[j].Language
	})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		log.Fatalf("Error executing template: %v", err)
	}

	if err := os.WriteFile("index.html", buf.Bytes(), 0o644); err != nil {
		log.Fatalf("Error writing index.html: %v", err)
	}

	fmt.Printf("Generated index.html from %d languages\n", len(templateData.Sections))
}

// formatMarkup trusts highlighter output, which escapes all source text.
func formatMarkup(markup string) template.HTML {
	return template.HTML(markup)
}

func dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		panic("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			panic(fmt.Sprintf("dict keys must be strings, got %T", values[i]))
		}
		m[key] = values[i+1]
	}
	return m
}
