package grpc

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/optimizer"
	"github.com/pricewise/pricewise-backend/internal/usecase/planner"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

const maxQuantity = 10000

// Request field helpers. Missing fields read as zero values.

func stringField(req *structpb.Struct, field string) string {
	return req.GetFields()[field].GetStringValue()
}

func boolField(req *structpb.Struct, field string) bool {
	return req.GetFields()[field].GetBoolValue()
}

func hasField(req *structpb.Struct, field string) bool {
	_, ok := req.GetFields()[field]
	return ok
}

func listField(req *structpb.Struct, field string) []*structpb.Value {
	return req.GetFields()[field].GetListValue().GetValues()
}

func parseUUID(req *structpb.Struct, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(stringField(req, field))
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return id, nil
}

func parseDecimal(req *structpb.Struct, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(stringField(req, field))
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return amount, nil
}

// parseUUIDList reads a list of id strings. ok is false when the field is absent.
func parseUUIDList(req *structpb.Struct, field string) (ids []uuid.UUID, ok bool, err error) {
	if !hasField(req, field) {
		return nil, false, nil
	}
	for _, v := range listField(req, field) {
		id, err := uuid.Parse(v.GetStringValue())
		if err != nil {
			return nil, true, status.Errorf(codes.InvalidArgument, "invalid %s entry %q: %v", field, v.GetStringValue(), err)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func parseListItems(req *structpb.Struct) ([]domain.ListItem, error) {
	values := listField(req, "items")
	items := make([]domain.ListItem, 0, len(values))
	for i, v := range values {
		entry := v.GetStructValue()
		item := domain.ListItem{
			Name:     stringField(entry, "name"),
			Quantity: 1,
		}
		if hasField(entry, "quantity") {
			q := entry.GetFields()["quantity"].GetNumberValue()
			if math.Trunc(q) != q || q > maxQuantity {
				return nil, status.Errorf(codes.InvalidArgument, "items[%d].quantity must be a whole number up to %d", i, maxQuantity)
			}
			item.Quantity = int(q)
		}
		if raw := stringField(entry, "product_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "invalid items[%d].product_id format: %v", i, err)
			}
			item.ProductID = &id
		}
		if err := item.Validate(); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "items[%d]: %v", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Response builders. Money is sent as a decimal string plus a formatted string.

func toStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return out, nil
}

func notFound() map[string]interface{} {
	return map[string]interface{}{"found": false}
}

// money formats aggregates that may span records, using the configured symbol
func (s *Server) money(fields map[string]interface{}, name string, amount decimal.Decimal) {
	setMoney(fields, name, amount, s.CurrencySymbol)
}

// recordMoney formats an amount in the currency stored on r
func (s *Server) recordMoney(fields map[string]interface{}, name string, amount decimal.Decimal, r *domain.PriceRecord) {
	symbol := s.CurrencySymbol
	if r != nil && r.Currency != "" {
		symbol = r.Currency
	}
	setMoney(fields, name, amount, symbol)
}

func setMoney(fields map[string]interface{}, name string, amount decimal.Decimal, symbol string) {
	fields[name] = amount.String()
	fields[name+"_formatted"] = pricing.FormatPrice(amount, symbol)
}

func productFields(p *domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":           p.ID.String(),
		"name":         p.Name,
		"category":     string(p.Category),
		"is_available": p.IsAvailable,
	}
}

func shopFields(shop *domain.Shop) map[string]interface{} {
	return map[string]interface{}{
		"id":          shop.ID.String(),
		"name":        shop.Name,
		"category":    string(shop.Category),
		"address":     shop.Address,
		"is_online":   shop.IsOnline,
		"url":         shop.URL,
		"is_favorite": shop.IsFavorite,
	}
}

func (s *Server) recordFields(r *domain.PriceRecord) map[string]interface{} {
	fields := map[string]interface{}{
		"id":         r.ID.String(),
		"product_id": r.ProductID.String(),
		"shop_id":    r.ShopID.String(),
		"brand":      r.Brand,
		"currency":   r.Currency,
		"updated_at": r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	s.recordMoney(fields, "price", r.Price, r)
	return fields
}

func (s *Server) comparisonFields(c *pricing.ComparisonResult) map[string]interface{} {
	fields := map[string]interface{}{
		"found":              true,
		"cheapest_shop_id":   c.CheapestShopID.String(),
		"cheapest_shop_name": c.CheapestShopName,
		"savings_percent":    c.SavingsPercent.StringFixed(2),
		"is_cheapest":        c.IsCheapest,
		"current_record_id":  c.CurrentRecord.ID.String(),
		"cheapest_record_id": c.CheapestRecord.ID.String(),
	}
	s.recordMoney(fields, "current_price", c.CurrentPrice, c.CurrentRecord)
	s.recordMoney(fields, "cheapest_price", c.CheapestPrice, c.CheapestRecord)
	s.recordMoney(fields, "savings", c.Savings, c.CurrentRecord)
	return fields
}

func (s *Server) alternativeFields(a *pricing.Alternative) map[string]interface{} {
	fields := s.comparisonFields(&a.Comparison)
	delete(fields, "found")
	fields["product_id"] = a.Product.ID.String()
	fields["product_name"] = a.Product.Name
	fields["local_brand"] = a.LocalRecord.Brand
	fields["cheapest_brand"] = a.CheapestRecord.Brand
	return fields
}

func (s *Server) optionFields(o *pricing.ShopOption) map[string]interface{} {
	records := make([]interface{}, 0, len(o.Records))
	for _, r := range o.Records {
		records = append(records, s.recordFields(r))
	}
	fields := map[string]interface{}{
		"shop_id":   o.Shop.ID.String(),
		"shop_name": o.Shop.Name,
		"records":   records,
	}
	var cheapest *domain.PriceRecord
	if len(o.Records) > 0 {
		cheapest = o.Records[0]
	}
	s.recordMoney(fields, "min_price", o.MinPrice, cheapest)
	return fields
}

func (s *Server) rankingFields(r *optimizer.ShopRanking) map[string]interface{} {
	fields := map[string]interface{}{
		"shop_id":                 r.Shop.ID.String(),
		"shop_name":               r.Shop.Name,
		"products_available":      r.ProductsAvailable,
		"cheapest_products_count": r.CheapestProductsCount,
	}
	s.money(fields, "estimated_total", r.EstimatedTotal)
	return fields
}

func (s *Server) tripFields(plan *planner.TripPlan) map[string]interface{} {
	stops := make([]interface{}, 0, len(plan.Stops))
	for _, stop := range plan.Stops {
		items := make([]interface{}, 0, len(stop.Items))
		for _, item := range stop.Items {
			entry := map[string]interface{}{
				"product_id":   item.Product.ID.String(),
				"product_name": item.Product.Name,
				"brand":        item.Record.Brand,
			}
			s.recordMoney(entry, "price", item.Record.Price, &item.Record)
			items = append(items, entry)
		}
		entry := map[string]interface{}{
			"shop_id":   stop.Shop.ID.String(),
			"shop_name": stop.Shop.Name,
			"items":     items,
		}
		s.money(entry, "subtotal", stop.Subtotal)
		stops = append(stops, entry)
	}

	unavailable := make([]interface{}, 0, len(plan.Unavailable))
	for i := range plan.Unavailable {
		unavailable = append(unavailable, productFields(&plan.Unavailable[i]))
	}

	fields := map[string]interface{}{
		"stops":       stops,
		"unavailable": unavailable,
	}
	s.money(fields, "total", plan.Total)
	return fields
}
