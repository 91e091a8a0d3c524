package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sant0-9/postcraft/internal/content"
	"github.com/sant0-9/postcraft/internal/history"
	"github.com/sant0-9/postcraft/internal/intent"
	"github.com/sant0-9/postcraft/internal/logging"
)

var errNoInstruction = errors.New("an instruction is required: pass it as arguments or use - to read stdin")

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "show how an instruction is interpreted, without generating",
		ArgsUsage: "<instruction> | -",
		Action: func(c *cli.Context) error {
			text, err := instructionText(c)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(intent.Parse(text))
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "generate a post from a natural language instruction",
		ArgsUsage: "<instruction> | -",
		Action: func(c *cli.Context) error {
			text, err := instructionText(c)
			if err != nil {
				return err
			}
			return withGenerator(c, func(ctx context.Context, gen *content.Generator) error {
				res, err := gen.ProcessPrompt(ctx, text)
				if err != nil {
					return err
				}
				printResult(c.App.Writer, res)
				return nil
			})
		},
	}
}

func topicCommand() *cli.Command {
	return &cli.Command{
		Name:      "topic",
		Usage:     "generate a post for a topic with the default options",
		ArgsUsage: "<topic>",
		Action: func(c *cli.Context) error {
			topic := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if topic == "" {
				return errors.New("a topic is required")
			}
			return withGenerator(c, func(ctx context.Context, gen *content.Generator) error {
				art, err := gen.QuickTopic(ctx, topic)
				if err != nil {
					return err
				}
				printResult(c.App.Writer, &content.Result{Original: topic, Parsed: intent.NewRequest(topic), Artifact: art})
				return nil
			})
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recently generated posts",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of entries to show"},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := loadConfig(c)
			if err != nil {
				return err
			}

			log, err := history.Open(cfg.History, cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer log.Close()

			entries, err := log.List(c.Context)
			if err != nil {
				return err
			}

			w := c.App.Writer
			if len(entries) == 0 {
				fmt.Fprintln(w, "No content history found.")
				return nil
			}
			fmt.Fprintf(w, "Content history (%d entries)\n", len(entries))
			for i, e := range history.Recent(entries, c.Int("limit")) {
				fmt.Fprintln(w, history.Line(i+1, e))
			}
			return nil
		},
	}
}

// withGenerator validates the config and runs fn with a generator that logs
// to stderr. Interrupts cancel the context.
func withGenerator(c *cli.Context, fn func(ctx context.Context, gen *content.Generator) error) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewConsole(c.App.ErrWriter, c.Bool("verbose"))
	gen, closer, err := buildGenerator(cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	return fn(ctx, gen)
}

// instructionText joins the arguments, or reads stdin when the only
// argument is "-"
func instructionText(c *cli.Context) (string, error) {
	var text string
	if c.NArg() == 1 && c.Args().First() == "-" {
		var err error
		if text, err = readInstruction(c.App.Reader); err != nil {
			return "", err
		}
	} else {
		text = strings.Join(c.Args().Slice(), " ")
	}

	if strings.TrimSpace(text) == "" {
		return "", errNoInstruction
	}
	return text, nil
}

// readInstruction reads lines until EOF or a line holding only END
func readInstruction(r io.Reader) (string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.EqualFold(strings.TrimSpace(line), "END") {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read instruction: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

func printResult(w io.Writer, res *content.Result) {
	req := res.Parsed
	art := res.Artifact

	fmt.Fprintln(w, "Interpreted request")
	fmt.Fprintf(w, "  Topic:        %s\n", req.Topic)
	fmt.Fprintf(w, "  Style:        %s\n", req.Style)
	if req.Audience != "" {
		fmt.Fprintf(w, "  Audience:     %s\n", req.Audience)
	}
	if reqs := req.Requirements(); len(reqs) > 0 {
		fmt.Fprintf(w, "  Requirements: %s\n", strings.Join(reqs, ", "))
	}
	if req.SaveFile {
		fmt.Fprintln(w, "  History:      saved")
	} else {
		fmt.Fprintln(w, "  History:      not saved")
	}
	fmt.Fprintf(w, "Written to %s\n\n", art.Path)
	fmt.Fprint(w, art.Content)
}
