package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"devopshq/artifactory-cleanup/pkg/cli"
	"devopshq/artifactory-cleanup/pkg/config"
)

var validateFlags struct {
	policiesFile string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a policy definition file",
	Long: `Load and resolve a policy definition file without contacting Artifactory.

Validation catches unknown rule names, rejected rule parameters, and
structural problems in the definition file before a run or daemon picks
it up.

Examples:
  # Validate the configured definition file
  artifactory-cleanup validate

  # Validate a specific file
  artifactory-cleanup validate --policies policies.yaml`,
	RunE: validateDefinition,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.policiesFile, "policies", "p", "", "policy definition file to validate")
}

func validateDefinition(cmd *cobra.Command, args []string) error {
	// Load config
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if validateFlags.policiesFile != "" {
		cfg.Policies.FilePath = validateFlags.policiesFile
	}

	logger := setupLogging(cfg)

	manager, err := loadPolicies(cfg.Policies.FilePath, logger)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	policySet := manager.Policies()

	ruleCount := 0
	for _, policy := range policySet {
		ruleCount += len(policy.Rules())
	}

	fmt.Printf("✓ Definition valid: %s\n", cfg.Policies.FilePath)
	fmt.Printf("✓ %d policies, %d rules\n", len(policySet), ruleCount)
	for _, policy := range policySet {
		fmt.Printf("  - %s (%d rules)\n", policy.Name(), len(policy.Rules()))
	}

	return nil
}
