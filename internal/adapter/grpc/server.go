package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/catalog"
	"github.com/pricewise/pricewise-backend/internal/usecase/dashboard"
	"github.com/pricewise/pricewise-backend/internal/usecase/optimizer"
	"github.com/pricewise/pricewise-backend/internal/usecase/planner"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

const defaultCurrencySymbol = "€"

// Server implements the PriceService gRPC server
type Server struct {
	CatalogService   *catalog.CatalogService
	DashboardService *dashboard.DashboardService
	CurrencySymbol   string
}

var _ PriceServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	catalogService *catalog.CatalogService,
	dashboardService *dashboard.DashboardService,
	currencySymbol string,
) *Server {
	if currencySymbol == "" {
		currencySymbol = defaultCurrencySymbol
	}
	return &Server{
		CatalogService:   catalogService,
		DashboardService: dashboardService,
		CurrencySymbol:   currencySymbol,
	}
}

// Compare handles the Compare RPC
func (s *Server) Compare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}
	shopID, err := parseUUID(req, "shop_id")
	if err != nil {
		return nil, err
	}

	snapshot := s.CatalogService.Snapshot()
	result := pricing.Compare(productID, shopID, snapshot.PriceRecords, snapshot.Shops)
	if result == nil {
		return toStruct(notFound())
	}
	return toStruct(s.comparisonFields(result))
}

// CheaperElsewhere handles the CheaperElsewhere RPC
func (s *Server) CheaperElsewhere(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	shopID, err := parseUUID(req, "shop_id")
	if err != nil {
		return nil, err
	}

	snapshot := s.CatalogService.Snapshot()
	alternatives := pricing.CheaperElsewhere(shopID, snapshot.PriceRecords, snapshot.Shops, snapshot.Products)

	entries := make([]interface{}, 0, len(alternatives))
	for i := range alternatives {
		entries = append(entries, s.alternativeFields(&alternatives[i]))
	}
	return toStruct(map[string]interface{}{"alternatives": entries})
}

// ListOptions handles the ListOptions RPC
func (s *Server) ListOptions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}

	snapshot := s.CatalogService.Snapshot()
	options := pricing.AllOptionsForProduct(productID, snapshot.PriceRecords, snapshot.Shops)

	entries := make([]interface{}, 0, len(options))
	for i := range options {
		entries = append(entries, s.optionFields(&options[i]))
	}
	return toStruct(map[string]interface{}{"options": entries})
}

// GetPriceRange handles the GetPriceRange RPC
func (s *Server) GetPriceRange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}

	snapshot := s.CatalogService.Snapshot()
	priceRange := pricing.PriceRange(productID, snapshot.PriceRecords)
	if priceRange == nil {
		return toStruct(notFound())
	}

	fields := map[string]interface{}{"found": true}
	s.money(fields, "min", priceRange.Min)
	s.money(fields, "max", priceRange.Max)
	return toStruct(fields)
}

// RankShops handles the RankShops RPC.
// Ranks for product_ids when given, otherwise for the products still needed.
func (s *Server) RankShops(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snapshot := s.CatalogService.Snapshot()
	needed, err := neededProducts(req, &snapshot)
	if err != nil {
		return nil, err
	}

	rankings := optimizer.RankShopsForList(needed, snapshot.PriceRecords, snapshot.Shops)

	entries := make([]interface{}, 0, len(rankings))
	for i := range rankings {
		entries = append(entries, s.rankingFields(&rankings[i]))
	}
	return toStruct(map[string]interface{}{"rankings": entries})
}

// PlanTrip handles the PlanTrip RPC
func (s *Server) PlanTrip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snapshot := s.CatalogService.Snapshot()
	needed, err := neededProducts(req, &snapshot)
	if err != nil {
		return nil, err
	}

	plan := planner.PlanTrip(needed, snapshot.PriceRecords, snapshot.Shops)
	return toStruct(s.tripFields(&plan))
}

// GetListTotal handles the GetListTotal RPC
func (s *Server) GetListTotal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	shopID, err := parseUUID(req, "shop_id")
	if err != nil {
		return nil, err
	}
	items, err := parseListItems(req)
	if err != nil {
		return nil, err
	}

	snapshot := s.CatalogService.Snapshot()
	total := optimizer.ListTotalAtShop(items, shopID, snapshot.PriceRecords)

	fields := map[string]interface{}{
		"priced_count":   total.PricedCount,
		"unpriced_count": total.UnpricedCount,
	}
	s.money(fields, "total", total.Total)
	return toStruct(fields)
}

// GetOverview handles the GetOverview RPC
func (s *Server) GetOverview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	overview, err := s.DashboardService.GetOverview(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	fields := map[string]interface{}{
		"product_count":      overview.ProductCount,
		"needed_count":       overview.NeededCount,
		"shop_count":         overview.ShopCount,
		"price_record_count": overview.PriceRecordCount,
		"orphan_count":       overview.OrphanCount,
	}
	if overview.BestShop != nil {
		fields["best_shop"] = s.rankingFields(overview.BestShop)
	}
	s.money(fields, "potential_savings", overview.PotentialSavings)
	return toStruct(fields)
}

// AddProduct handles the AddProduct RPC
func (s *Server) AddProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := catalog.AddProductInput{
		Name:        stringField(req, "name"),
		Category:    domain.ProductCategory(stringField(req, "category")),
		IsAvailable: boolField(req, "is_available"),
	}
	if input.Category == "" {
		input.Category = domain.ProductCategoryOther
	}

	product, err := s.CatalogService.AddProduct(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(productFields(product))
}

// AddShop handles the AddShop RPC
func (s *Server) AddShop(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := catalog.AddShopInput{
		Name:       stringField(req, "name"),
		Category:   domain.ShopCategory(stringField(req, "category")),
		Address:    stringField(req, "address"),
		IsOnline:   boolField(req, "is_online"),
		URL:        stringField(req, "url"),
		IsFavorite: boolField(req, "is_favorite"),
	}
	if input.Category == "" {
		input.Category = domain.ShopCategoryOther
	}

	shop, err := s.CatalogService.AddShop(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(shopFields(shop))
}

// RecordPrice handles the RecordPrice RPC
func (s *Server) RecordPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}
	shopID, err := parseUUID(req, "shop_id")
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal(req, "price")
	if err != nil {
		return nil, err
	}

	currency := stringField(req, "currency")
	if currency == "" {
		currency = s.CurrencySymbol
	}

	record, err := s.CatalogService.RecordPrice(ctx, catalog.RecordPriceInput{
		ProductID: productID,
		ShopID:    shopID,
		Brand:     stringField(req, "brand"),
		Price:     price,
		Currency:  currency,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(s.recordFields(record))
}

// SetProductAvailability handles the SetProductAvailability RPC
func (s *Server) SetProductAvailability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}

	product, err := s.CatalogService.SetProductAvailability(ctx, productID, boolField(req, "is_available"))
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(productFields(product))
}

// DeleteProduct handles the DeleteProduct RPC
func (s *Server) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := parseUUID(req, "product_id")
	if err != nil {
		return nil, err
	}
	if err := s.CatalogService.DeleteProduct(ctx, productID); err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]interface{}{"deleted": true})
}

// DeleteShop handles the DeleteShop RPC
func (s *Server) DeleteShop(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	shopID, err := parseUUID(req, "shop_id")
	if err != nil {
		return nil, err
	}
	if err := s.CatalogService.DeleteShop(ctx, shopID); err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]interface{}{"deleted": true})
}

// DeletePriceRecord handles the DeletePriceRecord RPC
func (s *Server) DeletePriceRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	recordID, err := parseUUID(req, "price_record_id")
	if err != nil {
		return nil, err
	}
	if err := s.CatalogService.DeletePriceRecord(ctx, recordID); err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]interface{}{"deleted": true})
}

// neededProducts resolves product_ids against the catalog, or falls back to
// the products not yet available
func neededProducts(req *structpb.Struct, snapshot *domain.Snapshot) ([]domain.Product, error) {
	ids, ok, err := parseUUIDList(req, "product_ids")
	if err != nil {
		return nil, err
	}
	if !ok {
		return snapshot.NeededProducts(), nil
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product := snapshot.ProductByID(id)
		if product == nil {
			return nil, mapError(fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound))
		}
		products = append(products, *product)
	}
	return products, nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrShopNotFound),
		errors.Is(err, domain.ErrPriceRecordNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	case errors.Is(err, domain.ErrDuplicateID):
		return status.Errorf(codes.AlreadyExists, "%s", errorMsg)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", errorMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", errorMsg)
	}

	// Storage failures are wrapped by the catalog and are never the caller's fault
	if strings.HasPrefix(errorMsg, "failed to") {
		return status.Errorf(codes.Internal, "%s", errorMsg)
	}

	// Map validation errors to InvalidArgument
	if strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "cannot be empty") ||
		strings.Contains(errorMsg, "must") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
