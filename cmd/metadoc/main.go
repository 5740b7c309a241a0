// Copyright 2026 NoteSpace Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	metadoc "github.com/notespace/metadoc"
	"github.com/notespace/metadoc/ai"
	"github.com/notespace/metadoc/ai/openai"
	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/pipeline"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the database directory",
		Value:   "metadoc.db",
	}
	uploadsFlag := &cli.StringFlag{
		Name:  "uploads",
		Usage: "Directory holding uploaded documents",
		Value: "uploads",
	}
	apiKeyFlag := &cli.StringFlag{
		Name:    "api-key",
		Usage:   "API key for the synthesis service",
		EnvVars: []string{"OPENAI_API_KEY"},
	}
	baseURLFlag := &cli.StringFlag{
		Name:  "base-url",
		Usage: "Override the synthesis service endpoint",
	}
	modelFlag := &cli.StringFlag{
		Name:  "model",
		Usage: "Synthesis model name",
		Value: "gpt-4-turbo-preview",
	}

	app := &cli.App{
		Name:  "metadoc",
		Usage: "Synthesize study notes from uploaded documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add-topic",
				Usage:     "Create a topic",
				ArgsUsage: "<name>",
				Action:    addTopicCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "add-file",
				Usage:     "Upload a document into a topic",
				ArgsUsage: "<path>",
				Action:    addFileCommand,
				Flags: []cli.Flag{
					dbFlag,
					uploadsFlag,
					&cli.Uint64Flag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic ID the document belongs to",
						Required: true,
					},
				},
			},
			{
				Name:   "topics",
				Usage:  "List all topics",
				Action: listTopicsCommand,
				Flags:  []cli.Flag{dbFlag},
			},
			{
				Name:      "process",
				Usage:     "Synthesize study notes for a topic",
				ArgsUsage: "<topic-id>",
				Action:    processCommand,
				Flags:     []cli.Flag{dbFlag, uploadsFlag, apiKeyFlag, baseURLFlag, modelFlag},
			},
			{
				Name:      "process-file",
				Usage:     "Synthesize a document's topic, triggered from one file",
				ArgsUsage: "<source-id>",
				Action:    processFileCommand,
				Flags:     []cli.Flag{dbFlag, uploadsFlag, apiKeyFlag, baseURLFlag, modelFlag},
			},
			{
				Name:   "process-all",
				Usage:  "Synthesize study notes for every topic",
				Action: processAllCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of topics processed concurrently",
						Value: pipeline.DefaultBatchWorkers,
					},
				}, dbFlag, uploadsFlag, apiKeyFlag, baseURLFlag, modelFlag),
			},
			{
				Name:      "status",
				Usage:     "Show the state of a processing job",
				ArgsUsage: "<job-id>",
				Action:    statusCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "show",
				Usage:     "Print a topic's latest synthesized notes",
				ArgsUsage: "<topic-id>",
				Action:    showCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "jobs",
				Usage:     "List the processing history of a topic",
				ArgsUsage: "<topic-id>",
				Action:    jobsCommand,
				Flags:     []cli.Flag{dbFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openSystem(c *cli.Context) (*metadoc.System, error) {
	system, err := metadoc.NewSystem(
		c.String("db"),
		metadoc.WithUploadRoot(c.String("uploads")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return system, nil
}

func newSynthesizer(c *cli.Context) (ai.Synthesizer, error) {
	cfg := ai.NewConfig(
		ai.WithAPIKey(c.String("api-key")),
		ai.WithBaseURL(c.String("base-url")),
		ai.WithModel(c.String("model")),
	)
	synthesizer, err := openai.NewSynthesizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}
	return synthesizer, nil
}

func argID(c *cli.Context, usage string) (core.ID, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("%s is required", usage)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", usage, raw)
	}
	return core.ID(id), nil
}

func addTopicCommand(c *cli.Context) error {
	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return fmt.Errorf("topic name is required")
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	topic, err := system.TopicRepository().AddTopic(context.Background(), &core.Topic{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}

	fmt.Printf("Created topic %d: %s\n", topic.Id, topic.Name)
	return nil
}

func addFileCommand(c *cli.Context) error {
	srcPath := c.Args().First()
	if srcPath == "" {
		return fmt.Errorf("file path is required")
	}
	topicID := core.ID(c.Uint64("topic"))

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()
	ctx := context.Background()

	if _, err := system.TopicRepository().GetTopic(ctx, topicID); err != nil {
		return fmt.Errorf("topic %d: %w", topicID, err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", srcPath, err)
	}

	filename := filepath.Base(srcPath)
	locator := fmt.Sprintf("%d_%s", topicID, filename)
	if err := copyFile(srcPath, filepath.Join(system.UploadRoot(), locator)); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	docs, err := system.SourceRepository().AddSources(ctx, &core.SourceDocument{
		TopicId:          topicID,
		OriginalFilename: filename,
		StorageLocator:   locator,
		ByteSize:         info.Size(),
	})
	if err != nil {
		return fmt.Errorf("failed to register document: %w", err)
	}

	fmt.Printf("Registered document %d: %s\n", docs[0].Id, docs[0].OriginalFilename)
	return nil
}

func listTopicsCommand(c *cli.Context) error {
	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()
	ctx := context.Background()

	topics, err := system.TopicRepository().ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		fmt.Println("No topics.")
		return nil
	}

	for _, topic := range topics {
		sources, err := system.SourceRepository().GetSourcesByTopic(ctx, topic.Id)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\t%d document(s)\n", topic.Id, topic.Name, len(sources))
	}
	return nil
}

func processCommand(c *cli.Context) error {
	topicID, err := argID(c, "topic id")
	if err != nil {
		return err
	}

	synthesizer, err := newSynthesizer(c)
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	p, err := system.NewPipeline(synthesizer)
	if err != nil {
		return err
	}
	return printResult(p.ProcessTopic(context.Background(), topicID))
}

func processFileCommand(c *cli.Context) error {
	sourceID, err := argID(c, "source id")
	if err != nil {
		return err
	}

	synthesizer, err := newSynthesizer(c)
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	p, err := system.NewPipeline(synthesizer)
	if err != nil {
		return err
	}
	return printResult(p.ProcessSource(context.Background(), sourceID))
}

func processAllCommand(c *cli.Context) error {
	synthesizer, err := newSynthesizer(c)
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	p, err := system.NewPipeline(synthesizer)
	if err != nil {
		return err
	}

	batch := pipeline.NewBatchProcessor(p, c.Int("workers"))
	outcomes, err := batch.ProcessAll(context.Background())
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}
	if len(outcomes) == 0 {
		fmt.Println("No topics.")
		return nil
	}

	failures := 0
	for _, outcome := range outcomes {
		result := outcome.Result
		if result.Status == core.ResultSuccess {
			fmt.Printf("%s: job %d, %d chunk(s), %d token(s)\n",
				outcome.TopicName, result.JobId, result.ChunkCount, result.TokenCount)
		} else {
			failures++
			fmt.Printf("%s: %s\n", outcome.TopicName, result.Message)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d topic(s) failed", failures, len(outcomes))
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	jobID, err := argID(c, "job id")
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	job, err := system.JobRepository().GetJob(context.Background(), jobID)
	if err != nil {
		return fmt.Errorf("job %d: %w", jobID, err)
	}

	fmt.Printf("Job %d\n", job.Id)
	fmt.Printf("  Topic:    %d\n", job.TopicId)
	fmt.Printf("  Status:   %s\n", job.Status)
	if len(job.SourceFilenames) > 0 {
		fmt.Printf("  Sources:  %s\n", strings.Join(job.SourceFilenames, ", "))
	}
	if job.ChunkCount > 0 {
		fmt.Printf("  Chunks:   %d\n", job.ChunkCount)
	}
	if job.TokenCount > 0 {
		fmt.Printf("  Tokens:   %d\n", job.TokenCount)
	}
	if job.ErrorMessage != "" {
		fmt.Printf("  Error:    %s\n", job.ErrorMessage)
	}
	fmt.Printf("  Created:  %s\n", job.CreatedAt.Local())
	fmt.Printf("  Updated:  %s\n", job.UpdatedAt.Local())
	return nil
}

func showCommand(c *cli.Context) error {
	topicID, err := argID(c, "topic id")
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	jobs, err := system.JobRepository().GetJobsByTopic(context.Background(), topicID)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	// History is in creation order; walk backwards to the newest completed run.
	for i := len(jobs) - 1; i >= 0; i-- {
		if jobs[i].Status == core.JobStatusCompleted {
			fmt.Println(jobs[i].SynthesizedContent)
			return nil
		}
	}
	return fmt.Errorf("topic %d has no completed synthesis", topicID)
}

func jobsCommand(c *cli.Context) error {
	topicID, err := argID(c, "topic id")
	if err != nil {
		return err
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	jobs, err := system.JobRepository().GetJobsByTopic(context.Background(), topicID)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs.")
		return nil
	}

	for _, job := range jobs {
		line := fmt.Sprintf("%d\t%s\t%s", job.Id, job.Status, job.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		if job.ErrorMessage != "" {
			line += "\t" + job.ErrorMessage
		}
		fmt.Println(line)
	}
	return nil
}

func printResult(result *core.JobResult) error {
	if result.Status == core.ResultSuccess {
		fmt.Printf("Job %d: %s (%d chunk(s), %d token(s))\n",
			result.JobId, result.Message, result.ChunkCount, result.TokenCount)
		return nil
	}
	if result.JobId != 0 {
		return fmt.Errorf("job %d failed: %s", result.JobId, result.Message)
	}
	return fmt.Errorf("%s", result.Message)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
