/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package pages

import (
	"strings"

	"layoutstudio/internal/domain"
)

// phaseRule labels a description when any of its keywords occurs in it.
type phaseRule struct {
	phase    domain.Phase
	keywords []string
}

func (r phaseRule) match(desc string) bool {
	for _, k := range r.keywords {
		if strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

// phaseRules is evaluated top to bottom; the first match wins.
var phaseRules = []phaseRule{
	{domain.PhaseExcluded, []string{"목차", "간지", "표지", "index", "contents", "cover", "title"}},
	{domain.PhaseFinance, []string{"finance", "budget", "cost", "profit", "accounting", "feasibility", "business", "sale", "calc", "회계", "비용", "예산", "사업", "수지", "분양", "수익", "타당성"}},
	{domain.PhaseTeam, []string{"team", "member", "org", "manpower", "partner", "company", "history", "intro", "팀", "조직", "운영", "인력", "소개", "연혁", "실적"}},
	{domain.PhaseVision, []string{"goal", "vision", "target", "objective", "purpose", "mission", "philosophy", "목표", "비전", "목적", "철학", "방향"}},
	{domain.PhaseAnalysis, []string{"analysis", "site", "context", "intro", "legal", "survey", "대지", "분석", "개요", "현황", "법규"}},
	{domain.PhaseStrategy, []string{"concept", "mass", "strategy", "zoning", "flow", "diagram", "process", "전략", "컨셉", "매스", "조닝", "동선"}},
	{domain.PhasePlan, []string{"plan", "section", "elevation", "detail", "structure", "mep", "drawing", "평면", "단면", "입면", "상세", "도면", "구조"}},
	{domain.PhaseDesign, []string{"perspective", "render", "view", "design", "facade", "cg", "interior", "투시도", "조감도", "디자인", "이미지", "내부"}},
}

// PhaseFromDescription is the rule-based classification of a page.
// Non-counted pages and empty descriptions are excluded; anything else
// that matches no rule is a plan page.
func PhaseFromDescription(desc string, status domain.PageStatus) domain.Phase {
	if status == domain.StatusSkipCount || status == domain.StatusHidden {
		return domain.PhaseExcluded
	}
	d := strings.ToLower(strings.TrimSpace(desc))
	if d == "" {
		return domain.PhaseExcluded
	}
	for _, r := range phaseRules {
		if r.match(d) {
			return r.phase
		}
	}
	return domain.PhasePlan
}

// ClassifyPhase returns the stored AI phase of a page, or the rule-based one.
// Unknown pages are excluded.
func (s *Store) ClassifyPhase(index int) domain.Phase {
	r, ok := s.Get(index)
	if !ok {
		return domain.PhaseExcluded
	}
	if r.AIPhase != "" {
		return r.AIPhase
	}
	return PhaseFromDescription(r.Description, r.Status)
}

// Balance counts classified ACTIVE pages per phase.
type Balance struct {
	Counts map[domain.Phase]int
	Total  int
}

// Share returns the fraction of counted pages in phase p.
func (b Balance) Share(p domain.Phase) float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Counts[p]) / float64(b.Total)
}

// PhaseBalance summarizes the narrative flow over ACTIVE pages.
func (s *Store) PhaseBalance() Balance {
	b := Balance{Counts: make(map[domain.Phase]int, len(domain.Phases))}
	for i, r := range s.recs {
		if r.Status != domain.StatusActive {
			continue
		}
		b.Counts[s.ClassifyPhase(i)]++
		b.Total++
	}
	return b
}

var phaseLabels = map[domain.Phase]string{
	domain.PhaseAnalysis: "Analysis",
	domain.PhaseStrategy: "Strategy",
	domain.PhasePlan:     "Planning",
	domain.PhaseDesign:   "Design",
	domain.PhaseFinance:  "Finance",
	domain.PhaseTeam:     "Team",
	domain.PhaseVision:   "Vision",
	domain.PhaseExcluded: "Etc",
}

// PhaseLabel is the human label of a phase.
func PhaseLabel(p domain.Phase) string {
	if l, ok := phaseLabels[p]; ok {
		return l
	}
	return phaseLabels[domain.PhaseExcluded]
}
