//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcadapter "github.com/pricewise/pricewise-backend/internal/adapter/grpc"
	"github.com/pricewise/pricewise-backend/internal/adapter/repository/postgres"
	"github.com/pricewise/pricewise-backend/internal/config"
)

var (
	db         *postgres.DB
	grpcClient *grpcadapter.PriceServiceClient
	grpcConn   *grpc.ClientConn
	cfg        config.Config
)

// TestMain sets up the test environment.
// It expects a server started with STORAGE_DRIVER=postgres against the same database.
func TestMain(m *testing.M) {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// 1. Connect to Database
	db, err = postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	if err := db.Migrate(); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	// 2. Connect to gRPC Server
	grpcConn, err = grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}

	grpcClient = grpcadapter.NewPriceServiceClient(grpcConn)

	code := m.Run()

	grpcConn.Close()
	db.Close()
	os.Exit(code)
}

// getAuthContext returns a context with authorization metadata
func getAuthContext() context.Context {
	md := metadata.New(map[string]string{
		"authorization": "Bearer " + cfg.APIToken,
	})
	return metadata.NewOutgoingContext(context.Background(), md)
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	addr := os.Getenv("GRPC_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}
	return addr
}

func call(t *testing.T, ctx context.Context, method string, fields map[string]interface{}) map[string]interface{} {
	t.Helper()
	req, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	resp, err := grpcClient.Call(ctx, method, req)
	require.NoError(t, err, "%s should succeed", method)
	return resp.AsMap()
}

// TestEndToEndFlow tests the complete flow: Shops -> Products -> Prices -> Comparison -> Cleanup
func TestEndToEndFlow(t *testing.T) {
	ctx := getAuthContext()

	// Step A: Create two shops and a needed product
	cheapShop := call(t, ctx, "AddShop", map[string]interface{}{"name": "E2E Discounter", "category": "DISCOUNTER"})
	pricyShop := call(t, ctx, "AddShop", map[string]interface{}{"name": "E2E Corner", "category": "SUPERMARKET", "is_favorite": true})
	product := call(t, ctx, "AddProduct", map[string]interface{}{"name": "E2E Oat Milk", "category": "DAIRY"})

	productID := product["id"].(string)
	cheapID := cheapShop["id"].(string)
	pricyID := pricyShop["id"].(string)

	t.Cleanup(func() {
		for _, shopID := range []string{cheapID, pricyID} {
			req, _ := structpb.NewStruct(map[string]interface{}{"shop_id": shopID})
			_, _ = grpcClient.Call(ctx, "DeleteShop", req)
		}
		req, _ := structpb.NewStruct(map[string]interface{}{"product_id": productID})
		_, _ = grpcClient.Call(ctx, "DeleteProduct", req)
	})

	// Step B: Record prices
	call(t, ctx, "RecordPrice", map[string]interface{}{"product_id": productID, "shop_id": cheapID, "price": "1.49", "brand": "Oatly"})
	call(t, ctx, "RecordPrice", map[string]interface{}{"product_id": productID, "shop_id": pricyID, "price": "1.99", "brand": "Oatly"})

	// Step C: Compare at the pricier shop
	comparison := call(t, ctx, "Compare", map[string]interface{}{"product_id": productID, "shop_id": pricyID})
	assert.Equal(t, true, comparison["found"])
	assert.Equal(t, false, comparison["is_cheapest"])
	assert.Equal(t, cheapID, comparison["cheapest_shop_id"])

	savings, err := decimal.NewFromString(comparison["savings"].(string))
	require.NoError(t, err)
	assert.True(t, savings.Equal(decimal.RequireFromString("0.50")), "Savings should be 0.50")

	// Step D: Verify the snapshot was persisted with the product
	var payload string
	err = db.QueryRowContext(ctx, `SELECT payload::text FROM app_snapshots WHERE key = $1`, cfg.SnapshotKey).Scan(&payload)
	require.NoError(t, err, "Snapshot row should exist")
	assert.Contains(t, payload, productID, "Snapshot should contain the new product")

	// Step E: Delete the cheap shop; its records go with it
	call(t, ctx, "DeleteShop", map[string]interface{}{"shop_id": cheapID})

	comparison = call(t, ctx, "Compare", map[string]interface{}{"product_id": productID, "shop_id": pricyID})
	assert.Equal(t, true, comparison["is_cheapest"], "Remaining shop should now be the cheapest")

	// Step F: Unknown ids are reported as NotFound
	req, err := structpb.NewStruct(map[string]interface{}{"shop_id": cheapID})
	require.NoError(t, err)
	_, err = grpcClient.Call(ctx, "DeleteShop", req)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// TestUnauthenticated verifies calls without a token are rejected
func TestUnauthenticated(t *testing.T) {
	_, err := grpcClient.Call(context.Background(), "GetOverview", nil)

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
