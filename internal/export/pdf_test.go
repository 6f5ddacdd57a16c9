/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"layoutstudio/internal/builder"
	"layoutstudio/internal/domain"
	"layoutstudio/internal/placement"
)

func flatSample() []domain.FlatPage {
	b := builder.New(builder.Options{InitialPages: 3})
	b.SetPaperSize([]int{1}, domain.A4Portrait)
	b.SetStatus([]int{2}, domain.StatusHidden)
	uid := b.AddPlacement(0, domain.AssetRef{ID: "a", Title: "Site plan"}, 2, 2, 12, 10)
	b.SetCaption(uid, "Context and access")
	top := b.AddPlacement(1, domain.AssetRef{ID: "b", Title: "Section"}, 4, 8, 10, 6)
	b.SetCaption(top, "Void")
	b.SetCaptionStyle(top, placement.CaptionStyle{Position: domain.CaptionTop, Align: domain.AlignCenter, Size: domain.CaptionSM})
	return b.Flatten()
}

func TestProofHasOnePagePerVisiblePage(t *testing.T) {
	pages := flatSample()
	pdf, err := proof(pages, ProofOptions{Title: "Proof", GridGuides: true, Labels: true})
	if err != nil {
		t.Fatalf("proof: %v", err)
	}
	if got := pdf.PageCount(); got != 2 {
		t.Fatalf("page count got %d want 2", got)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWriteProofFile_CreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "exports", "proof.pdf")
	if err := WriteProofFile(out, flatSample(), ProofOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil || st.Size() == 0 {
		t.Fatalf("pdf not written: %v", err)
	}
}

func TestProofRejectsEmpty(t *testing.T) {
	if err := WriteProof(&bytes.Buffer{}, nil, ProofOptions{}); err == nil {
		t.Fatalf("expected error for empty page list")
	}
}
