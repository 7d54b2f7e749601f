package main

import (
	"fmt"
	"log"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var tests map[string]*hilite.TestCase

func loadData() error {
	var err error

	tests, err = hilite.GetTests()
	if err != nil {
		return fmt.Errorf("failed to load tests: %v", err)
	}

	return nil
}

func main() {
	if err := loadData(); err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"hilite-mcp",
		version.Module(),
		server.WithToolCapabilities(false),
	)

	codeParam := mcp.WithString("code",
		mcp.Required(),
		mcp.Description("Source code to highlight"),
	)
	grammarParam := mcp.WithString("grammar",
		mcp.Description("Inline grammar document to register under the language name before highlighting"),
	)
	grammarFormatParam := mcp.WithString("grammarFormat",
		mcp.Description("Format of the inline grammar (yaml, json, toml) - defaults to yaml"),
	)

	highlightTool := mcp.NewTool("highlight",
		mcp.WithDescription("Highlight code with a named language and return HTML markup"),
		codeParam,
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Language name or alias"),
		),
		mcp.WithBoolean("ignoreIllegals",
			mcp.Description("Treat illegal lexemes as content instead of aborting (default true)"),
		),
		grammarParam,
		grammarFormatParam,
	)
	mcpServer.AddTool(highlightTool, highlightHandler)

	highlightAutoTool := mcp.NewTool("highlight_auto",
		mcp.WithDescription("Detect the language of code and return the best highlight with its runner-up"),
		codeParam,
		mcp.WithString("subset",
			mcp.Description("Comma-separated candidate languages (default: all registered)"),
		),
	)
	mcpServer.AddTool(highlightAutoTool, highlightAutoHandler)

	languagesTool := mcp.NewTool("languages",
		mcp.WithDescription("List registered languages with their display names and aliases"),
	)
	mcpServer.AddTool(languagesTool, languagesHandler)

	compareTool := mcp.NewTool("compare",
		mcp.WithDescription("Highlight two files with the same language and return a unified diff of the markup"),
		mcp.WithString("file1",
			mcp.Required(),
			mcp.Description("First file path"),
		),
		mcp.WithString("file2",
			mcp.Required(),
			mcp.Description("Second file path"),
		),
		mcp.WithString("language",
			mcp.Description("Language name or alias - will auto-detect from file1 if not specified"),
		),
		mcp.WithObject("fileSystem",
			mcp.Required(),
			mcp.Description("Map of filename to file content for the operation"),
		),
	)
	mcpServer.AddTool(compareTool, compareHandler)

	examplesTool := mcp.NewTool("examples",
		mcp.WithDescription("Search highlighting examples by keywords, or get one example by name"),
		mcp.WithString("keywords",
			mcp.Description("Keywords to search for (comma-separated) in example names, descriptions and code"),
		),
		mcp.WithString("name",
			mcp.Description("Name of a single example to return in full"),
		),
	)
	mcpServer.AddTool(examplesTool, examplesHandler)

	versionTool := mcp.NewTool("version",
		mcp.WithDescription("Get version and build information for hilite"),
	)
	mcpServer.AddTool(versionTool, versionHandler)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
