// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"aize/internal/lsp"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "aize" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	verbosity := flag.Int("v", 1, "log verbosity")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbosity, path)
	log := commonlog.GetLogger("aize.lsp")

	aizeHandler := lsp.NewAizeHandler()

	handler = protocol.Handler{
		Initialize:                     aizeHandler.Initialize,
		Initialized:                    aizeHandler.Initialized,
		Shutdown:                       aizeHandler.Shutdown,
		SetTrace:                       aizeHandler.SetTrace,
		TextDocumentDidOpen:            aizeHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           aizeHandler.TextDocumentDidClose,
		TextDocumentDidChange:          aizeHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: aizeHandler.TextDocumentSemanticTokensFull,
	}

	// stdio carries the protocol, so logging must not go to stdout
	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err.Error())
		os.Exit(1)
	}
}
