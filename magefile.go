//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "modtranslator"

// Default target to run when none is specified
var Default = Build

// Build builds the modtranslator binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/modtranslator")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/modtranslator")
}

// Lambda builds the linux/arm64 bootstrap binary for the provided.al2023 runtime
func Lambda() error {
	env := map[string]string{
		"GOOS":        "linux",
		"GOARCH":      "arm64",
		"CGO_ENABLED": "0",
	}
	if err := os.MkdirAll("dist", 0755); err != nil {
		return err
	}
	return sh.RunWithV(env, "go", "build", "-tags", "lambda.norpc", "-o", "dist/bootstrap", "./cmd/lambda")
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binary); err != nil {
		return err
	}
	return sh.Rm("dist")
}
