/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"layoutstudio/internal/domain"
	applog "layoutstudio/internal/log"
)

// Suggester turns model answers into typed proposals.
type Suggester struct {
	client  Client
	timeout time.Duration
	log     *slog.Logger
}

// NewSuggester wraps c. A zero timeout disables the per-call deadline.
func NewSuggester(c Client, timeout time.Duration) *Suggester {
	return &Suggester{client: c, timeout: timeout, log: applog.WithComponent("ai")}
}

// NarrativeAnalysis is the model's review of a page sequence.
type NarrativeAnalysis struct {
	Score             int
	Evaluation        string
	ReorderNeeded     bool
	BetterSequence    []string
	MissingSuggestion string
}

func (s *Suggester) complete(ctx context.Context, p Prompt) (gjson.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	l := applog.WithOperation(s.log, string(p.Task))
	start := time.Now()
	raw, err := s.client.Complete(ctx, p)
	if err != nil {
		l.Error("completion failed", slog.Any("err", err))
		return gjson.Result{}, fmt.Errorf("%s: %w", p.Task, err)
	}
	body := stripFence(raw)
	if body == "" {
		return gjson.Result{}, fmt.Errorf("%s: %w", p.Task, ErrEmptyResponse)
	}
	if !gjson.Valid(body) {
		l.Warn("response is not JSON", slog.Int("bytes", len(raw)))
		return gjson.Result{}, fmt.Errorf("%s: invalid JSON response", p.Task)
	}
	l.Debug("completion done", slog.Duration("took", time.Since(start)))
	return gjson.Parse(body), nil
}

// Caption writes or restyles a placement caption.
func (s *Suggester) Caption(ctx context.Context, r CaptionRequest) (string, error) {
	res, err := s.complete(ctx, buildCaptionPrompt(r))
	if err != nil {
		return "", err
	}
	c := strings.TrimSpace(res.Get("generated_caption").String())
	if c == "" {
		return "", fmt.Errorf("caption: %w", ErrEmptyResponse)
	}
	return c, nil
}

// ClassifyPhases asks for a phase per page. Blank texts are not sent; with
// nothing to send no request is made.
func (s *Suggester) ClassifyPhases(ctx context.Context, in []domain.PageText) ([]domain.PhaseAssignment, error) {
	var items []pageText
	for _, p := range in {
		if strings.TrimSpace(p.Text) != "" {
			items = append(items, pageText{PageIndex: p.PageIndex, Text: p.Text})
		}
	}
	if len(items) == 0 {
		return []domain.PhaseAssignment{}, nil
	}
	res, err := s.complete(ctx, buildPhasePrompt(items))
	if err != nil {
		return nil, err
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("phases: expected JSON array")
	}
	out := []domain.PhaseAssignment{}
	res.ForEach(func(_, v gjson.Result) bool {
		idx := v.Get("pageIndex")
		if idx.Type != gjson.Number {
			return true
		}
		out = append(out, domain.PhaseAssignment{PageIndex: int(idx.Int()), Phase: v.Get("phase").String()})
		return true
	})
	return out, nil
}

// AnalyzeNarrative reviews the page outline for the given project kind.
func (s *Suggester) AnalyzeNarrative(ctx context.Context, outline []string, kind ProjectKind) (NarrativeAnalysis, error) {
	if kind != KindBusiness {
		kind = KindPublic
	}
	res, err := s.complete(ctx, buildNarrativePrompt(outline, kind))
	if err != nil {
		return NarrativeAnalysis{}, err
	}
	a := NarrativeAnalysis{
		Score:             int(res.Get("current_score").Int()),
		Evaluation:        res.Get("evaluation").String(),
		ReorderNeeded:     res.Get("is_reorder_needed").Bool(),
		MissingSuggestion: res.Get("missing_suggestion").String(),
	}
	for _, v := range res.Get("better_sequence").Array() {
		if t := strings.TrimSpace(v.String()); t != "" {
			a.BetterSequence = append(a.BetterSequence, t)
		}
	}
	return a, nil
}

// stripFence removes a surrounding markdown code fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
