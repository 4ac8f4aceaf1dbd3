package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"party-advisor-be/internal/config"
	"party-advisor-be/internal/constant"
	"party-advisor-be/internal/service"
	"party-advisor-be/pkg/extractor"
	"party-advisor-be/pkg/knowledge"
	"party-advisor-be/pkg/llm"
	"party-advisor-be/pkg/llm/factory"
	"party-advisor-be/pkg/response"
	"party-advisor-be/pkg/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var (
		pro     bool
		kbFiles []string
	)

	cmd := &cobra.Command{
		Use:   "ask [--pro] [--kb file]... <question>",
		Short: "Stream an advisory reply to the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			profile := cfg.Ai.Profile(pro)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Ai.StreamTimeout)
			defer cancel()

			provider, err := factory.NewStreamProvider(ctx, factory.ProviderConfig{
				Provider:      cfg.Ai.LLMProvider,
				Model:         profile.Model,
				GeminiAPIKey:  cfg.Keys.GoogleGemini,
				OllamaBaseURL: cfg.Ai.OllamaBaseURL,
				OpenAIAPIKey:  cfg.Keys.OpenAI,
				OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
			})
			if err != nil {
				return err
			}

			docs, err := loadKnowledge(kbFiles)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			thinking := color.New(color.Faint)
			raw, err := provider.ChatStream(ctx, service.BuildTurn(nil, docs, question), func(c llm.Chunk) error {
				if c.Thought != "" {
					thinking.Print(c.Thought)
				}
				fmt.Print(c.Text)
				return nil
			},
				llm.WithModel(profile.Model),
				llm.WithTemperature(profile.Temperature),
				llm.WithThinkingBudget(profile.ThinkingBudget),
				llm.WithMaxTokens(cfg.Ai.MaxTokens),
				llm.WithSystemInstruction(constant.SystemInstruction),
			)
			fmt.Println()
			if err != nil {
				color.Red("Generation failed: %v", err)
				raw = constant.FallbackReply
			}

			printParsed(response.Parse(raw))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pro, "pro", false, "use the pro generation profile")
	cmd.Flags().StringArrayVar(&kbFiles, "kb", nil, "knowledge file to attach (repeatable)")
	return cmd
}

func loadKnowledge(paths []string) ([]store.KnowledgeDocument, error) {
	classifier := knowledge.NewClassifier(knowledge.DefaultKeywords())
	docs := make([]store.KnowledgeDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(path)
		mimeType := mime.TypeByExtension(filepath.Ext(name))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		text, _ := extractor.Extract(name, mimeType, data)

		docs = append(docs, store.KnowledgeDocument{
			ID:            name,
			DisplayName:   name,
			MIMEType:      mimeType,
			Payload:       data,
			Category:      classifier.Classify(name),
			ExtractedText: text,
			UploadedAt:    time.Now(),
		})
	}
	return docs, nil
}

func printParsed(p response.ParsedResponse) {
	heading := color.New(color.FgCyan, color.Bold)

	fmt.Println()
	heading.Println(response.LabelContent)
	fmt.Println(p.MainContent)

	if p.SourceCitations != "" {
		fmt.Println()
		heading.Println(response.LabelSources)
		color.Green("%s", p.SourceCitations)
	}
	if len(p.Suggestions) > 0 {
		fmt.Println()
		heading.Println(response.LabelSuggestions)
		for i, s := range p.Suggestions {
			color.Yellow("%d. %s", i+1, s)
		}
	}
}
