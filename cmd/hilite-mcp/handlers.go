package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/languages"
	"github.com/gopatchy/hilite/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
)

func highlightHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	language, err := request.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	ignoreIllegals := true
	if v, ok := args["ignoreIllegals"].(bool); ok {
		ignoreIllegals = v
	}

	tc := &hilite.TestCase{
		Language:       language,
		Code:           code,
		Grammar:        argString(args, "grammar"),
		GrammarFormat:  argString(args, "grammarFormat"),
		IgnoreIllegals: &ignoreIllegals,
	}

	return run(tc, "highlight")
}

func highlightAutoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	tc := &hilite.TestCase{
		Auto:       true,
		Candidates: argList(args, "subset"),
		Code:       code,
	}

	return run(tc, "highlight_auto")
}

func run(tc *hilite.TestCase, operation string) (*mcp.CallToolResult, error) {
	h, err := languages.Default()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := tc.Run(h)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Highlight failed: %v", err)), nil
	}

	response := resultResponse(result)
	response["operation"] = operation

	if result.SecondBest != nil {
		response["secondBest"] = resultResponse(result.SecondBest)
	}

	return jsonResult(response)
}

func resultResponse(result *hilite.Result) map[string]any {
	response := map[string]any{
		"language":  result.Language,
		"value":     result.Value,
		"relevance": result.Relevance,
		"illegal":   result.Illegal,
	}

	if result.IllegalBy != nil {
		response["illegalBy"] = map[string]any{
			"lexeme":  result.IllegalBy.Lexeme,
			"mode":    result.IllegalBy.Mode,
			"index":   result.IllegalBy.Index,
			"context": result.IllegalBy.Context,
		}
	}

	if result.ErrorRaised != nil {
		response["errorRaised"] = result.ErrorRaised.Error()
	}

	return response
}

func languagesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h, err := languages.Default()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list := []map[string]any{}

	for _, name := range h.ListLanguages() {
		lang := h.GetLanguage(name)

		entry := map[string]any{
			"name":        name,
			"displayName": lang.Name,
			"aliases":     lang.Aliases,
			"autoDetect":  !lang.DisableAutodetect,
		}

		if lang.SupersetOf != "" {
			entry["supersetOf"] = lang.SupersetOf
		}

		list = append(list, entry)
	}

	return jsonResult(map[string]any{
		"languages": list,
		"count":     len(list),
	})
}

func compareHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file1, err := request.RequireString("file1")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	file2, err := request.RequireString("file2")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	fx, err := argFS(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h, err := languages.Default()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.Compare(fx, file1, file2, argString(args, "language"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Compare failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"file1":     result.File1,
		"file2":     result.File2,
		"language":  result.Language,
		"diff":      result.Diff,
		"operation": "compare",
	})
}

func examplesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	if name := argString(args, "name"); name != "" {
		test, found := tests[name]
		if !found {
			return mcp.NewToolResultText(fmt.Sprintf("Example '%s' not found", name)), nil
		}

		return jsonResult(test)
	}

	keywords := argList(args, "keywords")
	for i := range keywords {
		keywords[i] = strings.ToLower(keywords[i])
	}
	if len(keywords) == 0 {
		return mcp.NewToolResultError("No keywords or name provided"), nil
	}

	results := []map[string]any{}

	for name, test := range tests {
		score := exampleScore(name, test, keywords)

		if score == 0 {
			continue
		}

		results = append(results, map[string]any{
			"name":        name,
			"description": test.Description,
			"language":    test.Language,
			"score":       score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		scoreI := results[i]["score"].(int)
		scoreJ := results[j]["score"].(int)
		if scoreI == scoreJ {
			return results[i]["name"].(string) < results[j]["name"].(string)
		}
		return scoreI > scoreJ
	})

	if len(results) > 15 {
		results = results[:15]
	}

	return jsonResult(map[string]any{
		"keywords": keywords,
		"results":  results,
		"count":    len(results),
	})
}

func versionHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bi := version.GetVersion()
	if bi == nil {
		return mcp.NewToolResultError("Failed to get build information"), nil
	}

	return jsonResult(bi)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	resultJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}
