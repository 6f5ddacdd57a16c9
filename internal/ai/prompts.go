/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package ai

import (
	"encoding/json"
	"strings"
)

const jsonOnly = "Answer with a single JSON value and nothing else."

// ProjectKind selects the reviewer persona for narrative analysis.
type ProjectKind string

const (
	KindPublic   ProjectKind = "public"
	KindBusiness ProjectKind = "business"
)

func buildNarrativePrompt(seq []string, kind ProjectKind) Prompt {
	input, _ := json.Marshal(map[string]any{"sequence": seq, "type": kind})
	var sb strings.Builder
	if kind == KindBusiness {
		sb.WriteString("Role: private development evaluation committee member and business planning director.\n")
		sb.WriteString("Criteria:\n")
		sb.WriteString("1. Feasibility: vision, finance and operation pages sit where they persuade.\n")
		sb.WriteString("2. Credibility: team and track record appear early enough.\n")
		sb.WriteString("3. Clear goals: project goals and target analysis come first.\n")
		sb.WriteString("4. Balance between emotive imagery and hard numbers.\n")
	} else {
		sb.WriteString("Role: strict architectural competition juror and design director.\n")
		sb.WriteString("Criteria:\n")
		sb.WriteString("1. Flow: analysis, strategy, plan, result.\n")
		sb.WriteString("2. Persuasion: flag drawings or renders that appear without grounds.\n")
		sb.WriteString("3. Public issues: site issues must lead into the design strategy.\n")
	}
	sb.WriteString("\nEvaluate the page sequence below and propose the most persuasive narrative order.\n")
	sb.WriteString("Input: ")
	sb.Write(input)
	sb.WriteString("\nOutput: {\"current_score\": 0-100, \"evaluation\": string, \"is_reorder_needed\": bool, ")
	sb.WriteString("\"better_sequence\": [\"1. page\", ...], \"missing_suggestion\": string}\n")
	sb.WriteString("better_sequence may reword items or add new ones marked [Suggestion].\n")
	return Prompt{Task: TaskNarrative, System: jsonOnly, User: sb.String(), Input: string(input)}
}

// CaptionRequest describes the caption to write or restyle.
type CaptionRequest struct {
	ReferenceTitle       string
	ReferenceDescription string
	Draft                string
	Category             string
	Tags                 []string
	PageDescription      string
}

func buildCaptionPrompt(r CaptionRequest) Prompt {
	input, _ := json.Marshal(map[string]any{
		"reference_style": map[string]string{"title": r.ReferenceTitle, "description": r.ReferenceDescription},
		"target_draft":    r.Draft,
		"context_info": map[string]any{
			"category":        r.Category,
			"tags":            r.Tags,
			"pageDescription": r.PageDescription,
		},
	})
	var sb strings.Builder
	sb.WriteString("Role: architectural text stylist who mimics the writer's style exactly.\n")
	if strings.TrimSpace(r.Draft) != "" {
		sb.WriteString("Task: rewrite target_draft in the tone, vocabulary and sentence structure of reference_style. Keep the meaning.\n")
	} else {
		sb.WriteString("Task: no draft given. Write a new caption from reference_style, the diagram tags and category, and the page description.\n")
	}
	sb.WriteString("Match sentence endings, vocabulary level, length and bilingual term style of the reference.\n")
	sb.WriteString("Input: ")
	sb.Write(input)
	sb.WriteString("\nOutput: {\"analysis\": {\"tone\": string, \"ending_style\": string, \"vocabulary_level\": string}, \"generated_caption\": string}\n")
	return Prompt{Task: TaskCaption, System: jsonOnly, User: sb.String(), Input: string(input)}
}

func buildPhasePrompt(items []pageText) Prompt {
	input, _ := json.Marshal(items)
	var sb strings.Builder
	sb.WriteString("Role: architectural project manager.\n")
	sb.WriteString("Task: classify each page description into one phase.\n")
	sb.WriteString("- analysis: site analysis, context, legal, survey, intro\n")
	sb.WriteString("- strategy: concept, massing, zoning, diagram, process\n")
	sb.WriteString("- plan: floor plans, sections, elevations, drawings, core, parking\n")
	sb.WriteString("- design: perspective, render, facade, interior design, cg\n")
	sb.WriteString("- finance: budget, cost, profit, feasibility, sale, calc\n")
	sb.WriteString("- team: organization, manpower, company history, partners\n")
	sb.WriteString("- vision: goal, target, philosophy, mission\n")
	sb.WriteString("- excluded: cover, index, contents, blank, spacer\n")
	sb.WriteString("Input: ")
	sb.Write(input)
	sb.WriteString("\nOutput: a JSON array of {\"pageIndex\": number, \"phase\": string} using only the phases above.\n")
	return Prompt{Task: TaskPhases, System: jsonOnly, User: sb.String(), Input: string(input)}
}

type pageText struct {
	PageIndex int    `json:"pageIndex"`
	Text      string `json:"text"`
}
