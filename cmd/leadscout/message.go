package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/outreach"
	"github.com/harshit/leadscout/internal/types"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Draft personalized outreach messages",
	Long:  "Drafts one outreach message per stakeholder row in companies_with_stakeholders.csv and writes companies_with_outreach.csv.",
	RunE:  runMessage,
}

func init() {
	rootCmd.AddCommand(messageCmd)
}

func runMessage(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	withStakeholders, err := loadStageInput(cfg.StakeholdersPath(), types.ColCompanyName)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	agent := outreach.NewAgent(client)
	agent.ShowProgress = true
	if cfg.OutreachDelayMS > 0 {
		agent.Delay = time.Duration(cfg.OutreachDelayMS) * time.Millisecond
	}

	withOutreach, err := agent.Run(ctx, withStakeholders)
	if err != nil {
		return fmt.Errorf("outreach drafting failed: %w", err)
	}
	if err := withOutreach.Save(cfg.OutreachPath()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Drafted %d messages\n", withOutreach.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.OutreachPath())
	return nil
}
