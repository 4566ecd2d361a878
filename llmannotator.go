package mcqgenerator

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// LLMAnnotator is an Annotator backed by an OpenAI chat model. It
// trades the in-process tagger for model-quality segmentation and
// tagging at the cost of network calls; callers that cannot tolerate
// a remote dependency should stick with ProseAnnotator.
type LLMAnnotator struct {
	client *openai.Client
	model  string
}

// NewLLMAnnotator creates an annotator that calls OpenAI for
// segmentation and tagging.
func NewLLMAnnotator(apiKey string) *LLMAnnotator {
	return &LLMAnnotator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// Sentences segments text into sentence spans using the model.
func (a *LLMAnnotator) Sentences(ctx context.Context, text string) ([]string, error) {
	VerboseLog("LLM annotator: segmenting %d characters", len(text))

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a sentence segmenter. Split the user's text into sentences without altering any characters. Use the submit_sentences tool to return them.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_sentences",
						Description: "Submit the segmented sentences",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"sentences": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "string",
									},
									"description": "The sentences in document order, verbatim",
								},
							},
							"required": []string{"sentences"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_sentences",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}

	var args struct {
		Sentences []string `json:"sentences"`
	}
	if err := decodeToolArguments(resp, "submit_sentences", &args); err != nil {
		return nil, err
	}
	return args.Sentences, nil
}

// Tokens tags every token in text with a noun/non-noun label using the
// model.
func (a *LLMAnnotator) Tokens(ctx context.Context, text string) ([]Token, error) {
	VerboseLog("LLM annotator: tagging %d characters", len(text))

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a part-of-speech tagger. Tokenize the user's text into words and punctuation, and mark each token that is a common or proper noun. Use the submit_tokens tool to return them.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_tokens",
						Description: "Submit the tagged tokens",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"tokens": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"text": map[string]interface{}{
												"type":        "string",
												"description": "The token surface form, verbatim",
											},
											"noun": map[string]interface{}{
												"type":        "boolean",
												"description": "True if the token is a noun",
											},
										},
										"required": []string{"text", "noun"},
									},
									"description": "All tokens in document order",
								},
							},
							"required": []string{"tokens"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_tokens",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	var args struct {
		Tokens []Token `json:"tokens"`
	}
	if err := decodeToolArguments(resp, "submit_tokens", &args); err != nil {
		return nil, err
	}
	return args.Tokens, nil
}

// decodeToolArguments extracts and unmarshals the arguments of the
// expected forced tool call from a chat completion response.
func decodeToolArguments(resp openai.ChatCompletionResponse, name string, out interface{}) error {
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return fmt.Errorf("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != name {
		return fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), out); err != nil {
		return fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return nil
}
