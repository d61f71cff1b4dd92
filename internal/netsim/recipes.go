package netsim

import "context"

// GetRecipes lists bill-of-materials headers by code, optionally filtered
// by a case-insensitive substring match on code or name.
func (c *Client) GetRecipes(ctx context.Context, limit, offset int, search string) ([]RemoteRecipe, error) {
	rows, err := c.Query(ctx, buildRecipesSQL(limit, offset, search), limit)
	if err != nil {
		return []RemoteRecipe{}, err
	}
	recipes := make([]RemoteRecipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, RemoteRecipe{
			RecipeNo:  row.Int("RECETE_NO"),
			Code:      row.Str("RECETE_KODU"),
			Name:      row.Str("RECETE_ADI"),
			Active:    row.Bool("AKTIF"),
			StockNo:   row.Int("STOK_NO"),
			StockName: row.Str("STOK_ADI"),
		})
	}
	return recipes, nil
}

// GetRecipeCount counts all recipe headers.
func (c *Client) GetRecipeCount(ctx context.Context) (int, error) {
	row, err := c.queryOne(ctx, buildRecipeCountSQL())
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return int(row.Int("CNT")), nil
}

// GetRecipeRevisions lists a recipe's revisions, default revision first,
// then code ascending.
func (c *Client) GetRecipeRevisions(ctx context.Context, recipeNo int64) ([]RemoteRecipeRevision, error) {
	rows, err := c.Query(ctx, buildRevisionsSQL(recipeNo), 0)
	if err != nil {
		return []RemoteRecipeRevision{}, err
	}
	revisions := make([]RemoteRecipeRevision, 0, len(rows))
	for _, row := range rows {
		revisions = append(revisions, RemoteRecipeRevision{
			RevisionNo:  row.Int("REVIZE_NO"),
			RecipeNo:    row.Int("RECETE_NO"),
			Code:        row.Str("REVIZE_KODU"),
			Active:      row.Bool("AKTIF"),
			Default:     row.Bool("VARSAYILAN"),
			Coefficient: row.Float("KATSAYI"),
			Quantity:    row.Float("MIKTAR"),
			Date:        row.Time("TARIH"),
		})
	}
	return revisions, nil
}

// GetRecipeDetails lists the input/output steps of one revision by
// sequence, resolving both the source and produced product names.
func (c *Client) GetRecipeDetails(ctx context.Context, revisionNo int64) ([]RemoteRecipeLine, error) {
	rows, err := c.Query(ctx, buildRecipeDetailsSQL(revisionNo), 0)
	if err != nil {
		return []RemoteRecipeLine{}, err
	}
	lines := make([]RemoteRecipeLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RemoteRecipeLine{
			DetailNo:          row.Int("DETAY_NO"),
			RevisionNo:        row.Int("REVIZE_NO"),
			OperationName:     row.Str("OPERASYON_ADI"),
			Direction:         int(row.Int("YON")),
			Seq:               int(row.Int("SIRA_NO")),
			StockNo:           row.Int("STOK_NO"),
			StockName:         row.Str("STOK_ADI"),
			Unit:              row.Str("BIRIM"),
			UnitFactor:        row.Float("BIRIM_CARPAN"),
			ProducedStockNo:   row.Int("URETIM_STOK_NO"),
			ProducedStockName: row.Str("URETIM_STOK_ADI"),
			TypeName:          row.Str("TIP_ADI"),
			SubRecipeNo:       row.Int("ALT_RECETE_NO"),
		})
	}
	return lines, nil
}

// GetRecipeSubDetails lists the sub-components of one recipe line.
func (c *Client) GetRecipeSubDetails(ctx context.Context, detailNo int64) ([]RemoteRecipeSubLine, error) {
	rows, err := c.Query(ctx, buildSubDetailsSQL(detailNo), 0)
	if err != nil {
		return []RemoteRecipeSubLine{}, err
	}
	subLines := make([]RemoteRecipeSubLine, 0, len(rows))
	for _, row := range rows {
		subLines = append(subLines, RemoteRecipeSubLine{
			SubDetailNo:  row.Int("ALTDETAY_NO"),
			DetailNo:     row.Int("DETAY_NO"),
			Seq:          int(row.Int("SIRA_NO")),
			VariableName: row.Str("DEGISKEN_ADI"),
			StockNo:      row.Int("STOK_NO"),
			StockName:    row.Str("STOK_ADI"),
			Unit:         row.Str("BIRIM"),
			Quantity:     row.Float("MIKTAR"),
		})
	}
	return subLines, nil
}

// GetRecipeDetailsByRecipeNo resolves a recipe's default (or failing that,
// active) revision and returns its details. Two round trips; a recipe with
// no revisions yields an empty slice, not an error.
func (c *Client) GetRecipeDetailsByRecipeNo(ctx context.Context, recipeNo int64) ([]RemoteRecipeLine, error) {
	row, err := c.queryOne(ctx, buildDefaultRevisionSQL(recipeNo))
	if err != nil {
		return []RemoteRecipeLine{}, err
	}
	if row == nil {
		return []RemoteRecipeLine{}, nil
	}
	return c.GetRecipeDetails(ctx, row.Int("REVIZE_NO"))
}

// GetProductRecipe finds the first recipe referencing the stock number as
// input or output and returns its default revision's details.
func (c *Client) GetProductRecipe(ctx context.Context, stockNo int64) ([]RemoteRecipeLine, error) {
	row, err := c.queryOne(ctx, buildProductRecipeSQL(stockNo))
	if err != nil {
		return []RemoteRecipeLine{}, err
	}
	if row == nil {
		return []RemoteRecipeLine{}, nil
	}
	return c.GetRecipeDetailsByRecipeNo(ctx, row.Int("RECETE_NO"))
}
