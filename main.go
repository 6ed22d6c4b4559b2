package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/spec-core/appconfig"
	"github.com/SaiNageswarS/spec-core/consensus"
	"github.com/SaiNageswarS/spec-core/engine"
	"github.com/SaiNageswarS/spec-core/jobs"
	"github.com/SaiNageswarS/spec-core/llm"
	"github.com/SaiNageswarS/spec-core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	ccfgg := &appconfig.AppConfig{}
	if err := config.LoadConfig("config.ini", ccfgg); err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	subject := flag.String("subject", "", "subject product name, e.g. \"diesel generator\"")
	searchFile := flag.String("search-keywords", "", "path to search keywords CSV")
	whatsappFile := flag.String("whatsapp-specs", "", "path to buyer specs CSV")
	rejectionFile := flag.String("rejection-comments", "", "path to rejection comments CSV")
	lmsFile := flag.String("lms-chats", "", "path to chat transcripts CSV")
	referenceFile := flag.String("reference", "", "path to reference catalog JSON")
	flag.Parse()

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	inputs := map[schema.SourceKey]string{
		schema.SourceSearchKeywords:    readOptionalFile(*searchFile),
		schema.SourceWhatsappSpecs:     readOptionalFile(*whatsappFile),
		schema.SourceRejectionComments: readOptionalFile(*rejectionFile),
		schema.SourceLmsChats:          readOptionalFile(*lmsFile),
	}

	var refSpecs []schema.ReferenceSpec
	if *referenceFile != "" {
		refs, err := schema.ParseReferenceSpecs(readOptionalFile(*referenceFile))
		if err != nil {
			logger.Fatal("Failed to parse reference catalog", zap.Error(err))
		}
		refSpecs = refs
	}

	client := provideLLMClient(ccfgg)
	orch := engine.NewOrchestrator(client)
	st := schema.NewWorkflowState(uuid.NewString(), *subject, inputs, refSpecs)

	ctx := getCancellableContext()

	if ccfgg.MongoURI != "" {
		runTracked(ctx, ccfgg, orch, st)
	} else {
		orch.Run(ctx, st)
	}

	printOutcome(st)
}

// runTracked persists job lifecycle updates alongside the run.
func runTracked(ctx context.Context, ccfgg *appconfig.AppConfig, orch *engine.Orchestrator, st *schema.WorkflowState) {
	mongoClient := odm.ProvideMongoClient()

	collection := odm.CollectionOf[jobs.JobModel](mongoClient, ccfgg.Tenant)
	tracker := jobs.NewTracker(collection, time.Duration(ccfgg.ResultsTTLHours)*time.Hour)

	jobID, err := tracker.Create(ctx, st.SubjectName)
	if err != nil {
		logger.Fatal("Failed to create job", zap.Error(err))
	}
	logger.Info("Tracking analysis job", zap.String("jobId", jobID))

	if err := tracker.RunJob(ctx, orch, st, jobID); err != nil {
		logger.Error("Job finished with failure", zap.String("jobId", jobID), zap.Error(err))
	}
}

func provideLLMClient(ccfgg *appconfig.AppConfig) llm.LLMClient {
	if ccfgg.LLMProvider == "ollama" {
		return llm.NewOllamaClient(ccfgg.OllamaModel)
	}
	return llm.NewAnthropicClient(ccfgg.AnthropicModel)
}

func readOptionalFile(path string) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("Failed to read input file", zap.String("path", path), zap.Error(err))
	}
	return string(data)
}

func printOutcome(st *schema.WorkflowState) {
	text, table := st.Consensus()

	fmt.Printf("\nPhase: %s (progress %d%%)\n\n", st.Phase(), st.Progress())
	if len(table) > 0 {
		fmt.Println(consensus.FormatConsensusTable(table))
	} else if text != "" {
		fmt.Println(text)
	}

	fmt.Println("Run log:")
	for _, line := range st.Log() {
		fmt.Println("  - " + line)
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
