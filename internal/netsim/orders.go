package netsim

import "context"

// newOrdersCap is the fixed row cap for the recent-orders poll.
const newOrdersCap = 50

// GetOrders lists purchase orders newest first. Only orders whose
// operation code begins with ALIS are considered; onlyOpen adds a
// not-closed predicate.
func (c *Client) GetOrders(ctx context.Context, limit, offset int, onlyOpen bool) ([]RemoteOrder, error) {
	rows, err := c.Query(ctx, buildOrdersSQL(limit, offset, onlyOpen), limit)
	if err != nil {
		return []RemoteOrder{}, err
	}
	orders := make([]RemoteOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row))
	}
	return orders, nil
}

// GetOrder fetches a single order header, nil when absent.
func (c *Client) GetOrder(ctx context.Context, orderNo int64) (*RemoteOrder, error) {
	row, err := c.queryOne(ctx, buildSingleOrderSQL(orderNo))
	if err != nil || row == nil {
		return nil, err
	}
	order := rowToOrder(row)
	return &order, nil
}

// GetOrderCount counts orders matching the same predicate as GetOrders.
func (c *Client) GetOrderCount(ctx context.Context, onlyOpen bool) (int, error) {
	row, err := c.queryOne(ctx, buildOrderCountSQL(onlyOpen))
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return int(row.Int("CNT")), nil
}

// GetNewOrders returns up to 50 open orders dated within the last
// minutesAgo minutes.
func (c *Client) GetNewOrders(ctx context.Context, minutesAgo int) ([]RemoteOrder, error) {
	rows, err := c.Query(ctx, buildNewOrdersSQL(minutesAgo), newOrdersCap)
	if err != nil {
		return []RemoteOrder{}, err
	}
	orders := make([]RemoteOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row))
	}
	return orders, nil
}

// GetOrderDetails returns the line items of one order by line sequence,
// with both the source and produced product names resolved.
func (c *Client) GetOrderDetails(ctx context.Context, orderNo int64) ([]RemoteOrderLine, error) {
	rows, err := c.Query(ctx, buildOrderDetailsSQL(orderNo), 0)
	if err != nil {
		return []RemoteOrderLine{}, err
	}
	lines := make([]RemoteOrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, rowToOrderLine(row))
	}
	return lines, nil
}

// GetCustomer looks up one counterparty, nil when absent.
func (c *Client) GetCustomer(ctx context.Context, customerNo int64) (*RemoteCustomer, error) {
	row, err := c.queryOne(ctx, buildCustomerSQL(customerNo))
	if err != nil || row == nil {
		return nil, err
	}
	return &RemoteCustomer{
		CustomerNo: row.Int("CARI_NO"),
		Code:       row.Str("CARI_KODU"),
		Name:       row.Str("UNVAN"),
		TaxOffice:  row.Str("VERGI_DAIRESI"),
		TaxNo:      row.Str("VERGI_NO"),
	}, nil
}

// GetProduct looks up one stock record, nil when absent.
func (c *Client) GetProduct(ctx context.Context, stockNo int64) (*RemoteProduct, error) {
	row, err := c.queryOne(ctx, buildProductSQL(stockNo))
	if err != nil || row == nil {
		return nil, err
	}
	return &RemoteProduct{
		StockNo:  row.Int("STOK_NO"),
		Code:     row.Str("STOK_KODU"),
		Name:     row.Str("STOK_ADI"),
		Unit:     row.Str("BIRIM"),
		TypeName: row.Str("TIP_ADI"),
	}, nil
}

func rowToOrder(row Row) RemoteOrder {
	return RemoteOrder{
		OrderNo:       row.Int("ALISSATIS_NO"),
		TrackingNo:    row.Str("TAKIP_NO"),
		OperationCode: row.Str("ISLEM_KODU"),
		OrderDate:     row.Time("TARIH"),
		DeliveryDate:  row.Time("TESLIM_TARIHI"),
		Approved:      row.Bool("ONAY"),
		Closed:        row.Bool("KAPANDI"),
		CustomerNo:    row.Int("CARI_NO"),
		CustomerName:  row.Str("UNVAN"),
		TotalAmount:   row.Float("TOPLAM_TUTAR"),
		Currency:      row.Str("DOVIZ"),
	}
}

func rowToOrderLine(row Row) RemoteOrderLine {
	return RemoteOrderLine{
		LineID:            row.Int("DETAY_NO"),
		OrderNo:           row.Int("ALISSATIS_NO"),
		Seq:               int(row.Int("SIRA_NO")),
		StockNo:           row.Int("STOK_NO"),
		StockCode:         row.Str("STOK_KODU"),
		StockName:         row.Str("STOK_ADI"),
		ProducedStockNo:   row.Int("URETIM_STOK_NO"),
		ProducedStockName: row.Str("URETIM_STOK_ADI"),
		Quantity:          row.Float("MIKTAR"),
		Unit:              row.Str("BIRIM"),
		UnitPrice:         row.Float("BIRIM_FIYAT"),
		Amount:            row.Float("TUTAR"),
		Note1:             row.Str("ACIKLAMA1"),
		Note2:             row.Str("ACIKLAMA2"),
		Note3:             row.Str("ACIKLAMA3"),
		Note4:             row.Str("ACIKLAMA4"),
		DeliveryDate:      row.Time("TESLIM_TARIHI"),
		RecipeName:        row.Str("RECETE_ADI"),
	}
}
