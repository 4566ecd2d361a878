package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"mcqgenerator"
)

func main() {
	var (
		inputFile    = flag.String("file", "", "Input document (PDF or plain text; default: read text from stdin)")
		numQuestions = flag.Int("questions", 5, "Number of questions to generate (1-20)")
		seed         = flag.Int64("seed", 0, "Random seed for reproducible output (0 = time-based)")
		outputFile   = flag.String("output", "", "Output file for question set JSON (default: stdout)")
		apiKey       = flag.String("api-key", "", "OpenAI API key for the LLM annotator (or set OPENAI_API_KEY; empty = in-process annotator)")
		playMode     = flag.Bool("play", false, "Answer the questions interactively")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	mcqgenerator.SetVerbose(*verbose)

	if *numQuestions < 1 {
		*numQuestions = 1
	}
	if *numQuestions > 20 {
		*numQuestions = 20
	}

	text, err := readInput(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}
	var annotator mcqgenerator.Annotator = mcqgenerator.NewProseAnnotator()
	if *apiKey != "" {
		annotator = mcqgenerator.NewLLMAnnotator(*apiKey)
	}

	var generator *mcqgenerator.Generator
	if *seed != 0 {
		generator = mcqgenerator.NewSeededGenerator(annotator, *seed)
	} else {
		generator = mcqgenerator.NewGenerator(annotator)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *playMode {
		playQuiz(ctx, generator, text, *numQuestions)
		return
	}

	set, err := generator.Generate(ctx, mcqgenerator.GenerationRequest{
		Text:         text,
		NumQuestions: *numQuestions,
	})
	if err != nil {
		log.Fatalf("Failed to generate questions: %v", err)
	}

	output, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal question set: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Question set saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}

// readInput loads the source text: a named file goes through the
// document extractor, otherwise stdin is read as plain text.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return mcqgenerator.ExtractText(path, data), nil
}

func playQuiz(ctx context.Context, generator *mcqgenerator.Generator, text string, numQuestions int) {
	fmt.Printf("📝 Generating up to %d questions from %d characters...\n\n", numQuestions, len(text))

	session := mcqgenerator.NewSession(generator)
	set, err := session.Generate(ctx, text, numQuestions)
	if err != nil {
		log.Fatalf("Failed to generate questions: %v", err)
	}

	if set.Len() == 0 {
		fmt.Println("No questions could be generated from the supplied text. Try a longer document.")
		return
	}

	labels := []string{"A", "B", "C", "D"}
	scanner := bufio.NewScanner(os.Stdin)

	for i, q := range set.Questions {
		fmt.Printf("Question %d/%d:\n", i+1, set.Len())
		fmt.Printf("%s\n\n", q.Prompt)

		for j, option := range q.Options {
			fmt.Printf("%s) %s\n", labels[j], option)
		}
		fmt.Println()

		var choice int
		for {
			fmt.Print("Your answer (A/B/C/D): ")
			scanner.Scan()
			answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			choice = strings.Index("ABCD", answer)
			if len(answer) == 1 && choice >= 0 {
				break
			}
			fmt.Println("Please enter A, B, C, or D")
		}

		if err := session.RecordAnswer(i, q.Options[choice]); err != nil {
			log.Fatalf("Failed to record answer: %v", err)
		}
		fmt.Println()
	}

	score, err := session.Submit()
	if err != nil {
		log.Fatalf("Failed to submit answers: %v", err)
	}

	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	for i, q := range set.Questions {
		if session.Responses()[i] == q.Answer {
			fmt.Printf("✅ Q%d: Correct!\n", i+1)
		} else {
			fmt.Printf("❌ Q%d: Incorrect. The correct answer is %s\n", i+1, q.Answer)
		}
	}

	percentage := float64(score) / float64(set.Len()) * 100
	fmt.Printf("\n📊 Score: %d/%d (%.1f%%)\n", score, set.Len(), percentage)

	if percentage >= 80 {
		fmt.Println("🌟 Excellent work!")
	} else if percentage >= 60 {
		fmt.Println("👍 Good job!")
	} else {
		fmt.Println("📚 Keep studying!")
	}
}
