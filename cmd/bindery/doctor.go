package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/bindery/bindery/internal/gemini"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Provider providerInfo `json:"provider"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// providerInfo holds asset provider readiness.
type providerInfo struct {
	APIKeySet    bool   `json:"api_key_set"`
	DefaultModel string `json:"default_model"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Provider: providerInfo{
			APIKeySet:    env.Getenv(gemini.APIKeyEnv) != "",
			DefaultModel: gemini.DefaultModel,
		},
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			CI:   env.Getenv("CI") != "",
		},
	}

	result.System.TempWritable = checkTempWritable()
	if !result.System.TempWritable {
		result.Errors = append(result.Errors, "temp directory is not writable; staged output cannot be created")
	}
	if !result.Provider.APIKeySet {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s is not set; only the placeholder provider will work", gemini.APIKeyEnv))
	}

	switch {
	case len(result.Errors) > 0:
		result.Status = "errors"
	case len(result.Warnings) > 0:
		result.Status = "warnings"
	}
	return result
}

// checkTempWritable verifies staged output can be created at all.
func checkTempWritable() bool {
	f, err := os.CreateTemp("", "bindery-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "Status: %s\n\n", r.Status)
	fmt.Fprintf(w, "Provider:\n  API key set: %v\n  Default model: %s\n", r.Provider.APIKeySet, r.Provider.DefaultModel)
	fmt.Fprintf(w, "Environment:\n  OS/Arch: %s/%s\n  CI: %v\n", r.Env.OS, r.Env.Arch, r.Env.CI)
	fmt.Fprintf(w, "System:\n  Temp writable: %v\n", r.System.TempWritable)
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "\nWARNING: %s\n", warning)
	}
	for _, errMsg := range r.Errors {
		fmt.Fprintf(w, "\nERROR: %s\n", errMsg)
	}
}
