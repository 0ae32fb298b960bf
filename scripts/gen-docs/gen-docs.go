// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go --path ../../docs/cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	echoprobecmd "github.com/telekom/echoprobe/cmd"
)

func main() {
	if err := newCmdGenDocs().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCmdGenDocs creates the command that writes the CLI reference
func newCmdGenDocs() *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generates the CLI reference of echoprobe",
		Long:  "Writes one markdown file per echoprobe command, describing its flags and config keys",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return genDocs(docPath)
		},
	}
	cmd.Flags().StringVar(&docPath, "path", "docs", "directory the markdown files are written to")

	return cmd
}

func genDocs(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	root := echoprobecmd.BuildCmd("")
	root.DisableAutoGenTag = true
	prepend := func(filename string) string {
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return fmt.Sprintf("<!-- Generated by gen-docs for %s. DO NOT EDIT. -->\n\n", strings.ReplaceAll(name, "_", " "))
	}
	link := func(name string) string { return name }

	if err := doc.GenMarkdownTreeCustom(root, path, prepend, link); err != nil {
		return fmt.Errorf("failed to generate docs: %w", err)
	}
	return nil
}
