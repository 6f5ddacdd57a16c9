/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"layoutstudio/internal/domain"
	"layoutstudio/internal/pages"
)

// MockClient answers locally without calling a model. Phases come from
// the keyword rules, narratives keep the given order and captions echo
// the draft.
type MockClient struct{}

func (MockClient) Complete(_ context.Context, p Prompt) (string, error) {
	in := gjson.Parse(p.Input)
	switch p.Task {
	case TaskCaption:
		caption := strings.TrimSpace(in.Get("target_draft").String())
		if caption == "" {
			caption = fmt.Sprintf("%s diagram", strings.TrimSpace(in.Get("context_info.category").String()))
			caption = strings.TrimSpace(caption)
		}
		return marshal(map[string]any{"generated_caption": caption})
	case TaskPhases:
		out := []map[string]any{}
		for _, item := range in.Array() {
			ph := pages.PhaseFromDescription(item.Get("text").String(), domain.StatusActive)
			out = append(out, map[string]any{"pageIndex": item.Get("pageIndex").Int(), "phase": string(ph)})
		}
		return marshal(out)
	case TaskNarrative:
		seq := []string{}
		for _, s := range in.Get("sequence").Array() {
			seq = append(seq, s.String())
		}
		return marshal(map[string]any{
			"current_score":      50,
			"evaluation":         "Mock evaluation: order kept as submitted.",
			"is_reorder_needed":  false,
			"better_sequence":    seq,
			"missing_suggestion": "",
		})
	}
	return "", fmt.Errorf("mock: unknown task %q", p.Task)
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}
