package netsim

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestGetRecipeRevisionsOrderingAndDeterminism(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM URETREV": {
			{"REVIZE_NO": float64(9), "RECETE_NO": float64(5), "REVIZE_KODU": "REV-B", "AKTIF": float64(1), "VARSAYILAN": float64(1), "KATSAYI": float64(1), "MIKTAR": float64(1), "TARIH": "2026-01-10"},
			{"REVIZE_NO": float64(7), "RECETE_NO": float64(5), "REVIZE_KODU": "REV-A", "AKTIF": float64(1), "VARSAYILAN": float64(0), "KATSAYI": float64(1.5), "MIKTAR": float64(10), "TARIH": "2025-06-01"},
		},
	})

	c := sb.client()

	first, err := c.GetRecipeRevisions(context.Background(), 5)
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}

	sql := sb.lastQuery()
	if !strings.Contains(sql, "ORDER BY VARSAYILAN DESC, REVIZE_KODU") {
		t.Fatalf("revision ordering missing:\n%s", sql)
	}

	if len(first) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(first))
	}
	if !first[0].Default || first[0].Code != "REV-B" {
		t.Fatalf("default revision must come first: %+v", first[0])
	}
	if first[1].Coefficient != 1.5 || first[1].Quantity != 10 {
		t.Fatalf("numeric mapping wrong: %+v", first[1])
	}

	// Same data, second call: identical sequence in identical order.
	second, err := c.GetRecipeRevisions(context.Background(), 5)
	if err != nil {
		t.Fatalf("revisions again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("sequential calls on unchanged data differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGetRecipeDetailsDirectionPassThrough(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM URETDET D": {
			{"DETAY_NO": float64(101), "REVIZE_NO": float64(9), "OPERASYON_ADI": "KESIM", "YON": float64(1), "SIRA_NO": float64(1), "STOK_NO": float64(310), "STOK_ADI": "MDF PANEL 18MM", "BIRIM": "M2", "BIRIM_CARPAN": float64(1), "URETIM_STOK_NO": float64(0), "TIP_ADI": "HAMMADDE", "ALT_RECETE_NO": float64(0)},
			{"DETAY_NO": float64(102), "REVIZE_NO": float64(9), "OPERASYON_ADI": "MONTAJ", "YON": float64(-1), "SIRA_NO": float64(2), "STOK_NO": float64(0), "URETIM_STOK_NO": float64(911), "URETIM_STOK_ADI": "GARDROP 3 KAPILI", "BIRIM": "AD", "BIRIM_CARPAN": float64(1), "ALT_RECETE_NO": float64(0)},
			{"DETAY_NO": float64(103), "REVIZE_NO": float64(9), "OPERASYON_ADI": "NOT", "YON": float64(3), "SIRA_NO": float64(3), "STOK_NO": float64(0), "URETIM_STOK_NO": float64(0), "BIRIM_CARPAN": float64(0), "ALT_RECETE_NO": float64(12)},
		},
	})

	lines, err := sb.client().GetRecipeDetails(context.Background(), 9)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Direction != DirectionInput || lines[1].Direction != DirectionOutput {
		t.Fatalf("direction mapping wrong: %+v %+v", lines[0], lines[1])
	}
	// Any other value on the wire passes through unchanged.
	if lines[2].Direction != 3 {
		t.Fatalf("neutral direction must pass through unvalidated, got %d", lines[2].Direction)
	}
	if lines[2].SubRecipeNo != 12 {
		t.Fatalf("sub-recipe linkage wrong: %+v", lines[2])
	}
}

func TestGetRecipeDetailsByRecipeNoResolvesDefaultRevision(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"SELECT FIRST 1 REVIZE_NO": {{"REVIZE_NO": float64(9)}},
		"FROM URETDET D": {
			{"DETAY_NO": float64(101), "REVIZE_NO": float64(9), "YON": float64(1), "SIRA_NO": float64(1)},
		},
	})

	lines, err := sb.client().GetRecipeDetailsByRecipeNo(context.Background(), 5)
	if err != nil {
		t.Fatalf("by recipe no: %v", err)
	}
	if len(lines) != 1 || lines[0].RevisionNo != 9 {
		t.Fatalf("expected details of revision 9, got %+v", lines)
	}

	if len(sb.queries) != 2 {
		t.Fatalf("expected exactly two round trips, got %d", len(sb.queries))
	}
	if !strings.Contains(sb.queries[0], "ORDER BY VARSAYILAN DESC, AKTIF DESC") {
		t.Fatalf("revision resolution tie-break missing:\n%s", sb.queries[0])
	}
	if !strings.Contains(sb.queries[1], "WHERE D.REVIZE_NO = 9") {
		t.Fatalf("details query must target the resolved revision:\n%s", sb.queries[1])
	}
}

func TestGetRecipeDetailsByRecipeNoNoRevisions(t *testing.T) {
	sb := newStubBridge(t)

	lines, err := sb.client().GetRecipeDetailsByRecipeNo(context.Background(), 5)
	if err != nil {
		t.Fatalf("a recipe without revisions must not error: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty slice, got %v", lines)
	}
	if len(sb.queries) != 1 {
		t.Fatalf("no details query should be issued, got %d queries", len(sb.queries))
	}
}

func TestGetProductRecipeDelegation(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"SELECT FIRST 1 V.RECETE_NO": {{"RECETE_NO": float64(5)}},
		"SELECT FIRST 1 REVIZE_NO":   {{"REVIZE_NO": float64(9)}},
		"WHERE D.REVIZE_NO = 9": {
			{"DETAY_NO": float64(101), "REVIZE_NO": float64(9), "YON": float64(1), "SIRA_NO": float64(1)},
		},
	})

	lines, err := sb.client().GetProductRecipe(context.Background(), 911)
	if err != nil {
		t.Fatalf("product recipe: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !strings.Contains(sb.queries[0], "D.STOK_NO = 911 OR D.URETIM_STOK_NO = 911") {
		t.Fatalf("stock reference predicate missing:\n%s", sb.queries[0])
	}
	if len(sb.queries) != 3 {
		t.Fatalf("expected lookup + resolution + details, got %d queries", len(sb.queries))
	}
}

func TestGetProductRecipeNoRecipe(t *testing.T) {
	sb := newStubBridge(t)

	lines, err := sb.client().GetProductRecipe(context.Background(), 911)
	if err != nil {
		t.Fatalf("missing recipe must not error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty slice, got %v", lines)
	}
}

func TestGetRecipesSearch(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM URETRECE R": {
			{"RECETE_NO": float64(5), "RECETE_KODU": "RCT-005", "RECETE_ADI": "GARDROP STD", "AKTIF": float64(1), "STOK_NO": float64(911), "STOK_ADI": "GARDROP 3 KAPILI"},
		},
	})

	recipes, err := sb.client().GetRecipes(context.Background(), 20, 0, "gardrop")
	if err != nil {
		t.Fatalf("recipes: %v", err)
	}

	sql := sb.lastQuery()
	if !strings.Contains(sql, "LIKE '%GARDROP%'") {
		t.Fatalf("search term must be uppercased into the LIKE pattern:\n%s", sql)
	}
	if !strings.Contains(sql, "ORDER BY R.RECETE_KODU") {
		t.Fatalf("recipe ordering missing:\n%s", sql)
	}

	if len(recipes) != 1 || !recipes[0].Active || recipes[0].StockName != "GARDROP 3 KAPILI" {
		t.Fatalf("unexpected recipes: %+v", recipes)
	}
}

func TestGetRecipeSubDetails(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM URETDETALT": {
			{"ALTDETAY_NO": float64(7001), "DETAY_NO": float64(101), "SIRA_NO": float64(1), "DEGISKEN_ADI": "GENISLIK", "STOK_NO": float64(310), "STOK_ADI": "MDF PANEL 18MM", "BIRIM": "MM", "MIKTAR": float64(600)},
		},
	})

	subLines, err := sb.client().GetRecipeSubDetails(context.Background(), 101)
	if err != nil {
		t.Fatalf("sub details: %v", err)
	}
	if len(subLines) != 1 {
		t.Fatalf("expected 1 sub line, got %d", len(subLines))
	}
	s := subLines[0]
	if s.SubDetailNo != 7001 || s.VariableName != "GENISLIK" || s.Quantity != 600 {
		t.Fatalf("sub line mapping wrong: %+v", s)
	}
	if !strings.Contains(sb.lastQuery(), "ORDER BY A.SIRA_NO") {
		t.Fatalf("sub line ordering missing:\n%s", sb.lastQuery())
	}
}
