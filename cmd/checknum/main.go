package main

// Offline classification against a local rule file:
//
//	go run ./cmd/checknum -rules rules.json 02080996910 "020 7946 0000"
//
// The rule file is the JSON array the snapshot archive stores, so the rules
// field of any archived snapshot works as input.

import (
	"flag"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func main() {
	var (
		rulesPath  = flag.String("rules", "", "path to a JSON rule array")
		policyName = flag.String("policy", "current", "status policy: current or legacy")
	)

	flag.Parse()

	if *rulesPath == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: checknum -rules rules.json [-policy current|legacy] number [number...]")
		os.Exit(2)
	}

	if err := run(*rulesPath, *policyName, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "checknum:", err)
		os.Exit(1)
	}
}

func run(rulesPath, policyName string, numbers []string) error {
	policy, err := numplan.StatusPolicyByName(policyName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(rulesPath)
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}

	var rules []entity.AllocationRule
	if err := json.Unmarshal(content, &rules); err != nil {
		return fmt.Errorf("parse rules: %w", err)
	}

	classifier := numplan.NewClassifier(numplan.BuildIndex(rules), policy)

	for _, raw := range numbers {
		national, err := value.ParseNationalNumber(raw)
		if err != nil {
			fmt.Printf("%s\t%s\n", raw, entity.NumberInvalid)
			continue
		}

		classification := classifier.Classify(national)

		if classification.Provider != "" {
			fmt.Printf("%s\t%s\t%s\n", raw, classification.Outcome, classification.Provider)
		} else {
			fmt.Printf("%s\t%s\n", raw, classification.Outcome)
		}
	}

	return nil
}
