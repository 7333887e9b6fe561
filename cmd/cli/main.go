// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/version"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "forgegate-cli",
	Short: "forgegate cli is a command line tool",
	Long:  "forgegate cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "forgegate engine base URL")
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(waitCmd)
}

func main() {
	// Library logging goes to stderr so stdout stays clean for command
	// output.
	log.MustInit(&log.Conf{Output: "stderr", Level: "WARN"})

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
