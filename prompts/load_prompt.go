package prompts

import (
	"bytes"
	"context"
	"embed"
	"strings"
	"text/template"

	"github.com/SaiNageswarS/spec-core/llm"
)

//go:embed templates/*
var templatesFS embed.FS

func loadPrompt(templatePath string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// runInference sends one system+user prompt pair and collects the full
// response text.
func runInference(ctx context.Context, client llm.LLMClient, systemPrompt, userPrompt string, opts ...llm.LLMOption) (string, error) {
	var sb strings.Builder

	opts = append(opts, llm.WithSystemPrompt(systemPrompt))
	err := client.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: userPrompt}},
		func(chunk string) error {
			sb.WriteString(chunk)
			return nil
		},
		opts...)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
