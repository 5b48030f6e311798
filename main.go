package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	classifierx "github.com/helpline-ai/helpline/agent/classifier"
	coordinatorx "github.com/helpline-ai/helpline/agent/coordinator"
	llmx "github.com/helpline-ai/helpline/agent/llm"
	replyx "github.com/helpline-ai/helpline/agent/reply"
	configx "github.com/helpline-ai/helpline/pkg/config"
	_ "github.com/helpline-ai/helpline/pkg/logger/autoload"
	openrouterx "github.com/helpline-ai/helpline/pkg/openrouter"
)

func main() {
	openRouterCfg := configx.MustLoad[openrouterx.Config]("OPENROUTER")
	openRouterClient := openrouterx.MustNew(*openRouterCfg)

	generator, err := llmx.NewGenerator(openRouterClient, *openRouterCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build text generator")
	}

	classifier, err := classifierx.New(generator)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build classifier")
	}
	replier, err := replyx.New(generator)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build reply generator")
	}

	agent, err := coordinatorx.New(classifier, replier, coordinatorx.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build coordinator")
	}

	messages := []string{
		"I want to cancel my subscription.",
		"My invoice amount is wrong.",
		"Hello, I need help.",
	}

	ctx := context.Background()
	for _, msg := range messages {
		fmt.Println("USER:", msg)
		out, err := agent.Ask(ctx, msg)
		if err != nil {
			log.Fatal().Err(err).Msg("turn failed")
		}
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("encode turn result")
		}
		fmt.Println(string(encoded))
		fmt.Println("--------------------------------------------------")
	}
}
