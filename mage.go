//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetOutput          = "gen"
	sqliteFileLocation = "campusevents.sqlite"
	serverBin          = "./bin/server"
	seedAdminBin       = "./bin/seedadmin"
	serverConfigPath   = "configs/server.toml"
)

const (
	toolsDir     = "tools/"
	toolsModfile = toolsDir + "go.mod"
	toolsBinDir  = toolsDir + "bin/"
	lintTool     = toolsBinDir + "golangci-lint"
	jetTool      = toolsBinDir + "jet"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds server and seedadmin binaries
func Build() error {
	mg.Deps(goModDownload)
	if err := sh.Run("go", "build", "-o", serverBin, "./cmd"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", seedAdminBin, "./cmd/seedadmin")
}

// Run starts server
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin, "-server-config", serverConfigPath)
}

// SeedAdmin creates or resets the admin account from CAMPUSEVENTS_ADMIN_PASSWORD
func SeedAdmin() error {
	mg.Deps(Build)
	if os.Getenv("CAMPUSEVENTS_ADMIN_PASSWORD") == "" {
		return mg.Fatal(1, "CAMPUSEVENTS_ADMIN_PASSWORD is not set")
	}
	return sh.Run(seedAdminBin, "-server-config", serverConfigPath)
}

// GenJet regenerates gen/ from a migrated database file
func GenJet() error {
	mg.Deps(buildJetTool)
	if _, err := os.Stat(sqliteFileLocation); err != nil {
		return mg.Fatalf(1, "%s not found, start the server once to apply migrations", sqliteFileLocation)
	}
	return sh.Run(jetTool, "-source", "sqlite", "-dsn", sqliteFileLocation, "-path", jetOutput, "-ignore-tables", "schema_migrations")
}

func buildJetTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-o", jetTool, "github.com/go-jet/jet/v2/cmd/jet")
}

func Lint() error {
	mg.Deps(buildLintTool)
	return sh.Run(lintTool, "run", "./...")
}

func buildLintTool() error {
	return sh.Run(
		"go", "build",
		"-modfile", toolsModfile,
		"-o", lintTool,
		"github.com/golangci/golangci-lint/cmd/golangci-lint",
	)
}

// Test runs unit tests with the race detector
func Test() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "test", "-race", "./...")
}
