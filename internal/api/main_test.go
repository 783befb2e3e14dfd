package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"datviz-backend/internal/config"
	"datviz-backend/internal/cryptox"
	"datviz-backend/internal/database"
	"datviz-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAuthToken = "test-auth-token"

var testServer *Server

// stubGateway replaces the OpenAI gateway in handler tests.
type stubGateway struct {
	analysis     *models.AnalysisResult
	analysisCost float64
	analysisErr  error

	graphResult *models.GraphGenerationResult
	graphCost   float64
	graphErr    error

	suggestions []string
}

func (g *stubGateway) Analyze(_ context.Context, _ string, _ []models.Row) (*models.AnalysisResult, float64, error) {
	if g.analysisErr != nil {
		return nil, 0, g.analysisErr
	}
	result := g.analysis
	if result == nil {
		result = &models.AnalysisResult{
			Insights: "Stub insights.",
			PromptSuggestions: []string{
				"suggestion 1", "suggestion 2", "suggestion 3", "suggestion 4", "suggestion 5",
			},
		}
	}
	return result, g.analysisCost, nil
}

func (g *stubGateway) GenerateGraph(_ context.Context, _ string, _ []models.Row) (*models.GraphGenerationResult, float64, error) {
	if g.graphErr != nil {
		return nil, 0, g.graphErr
	}
	return g.graphResult, g.graphCost, nil
}

func (g *stubGateway) SuggestAlternatives(_ context.Context, _ string) []string {
	if g.suggestions != nil {
		return g.suggestions
	}
	return []string{"alt 1", "alt 2", "alt 3"}
}

var apiUserSeq int

func createAPITestUser(t *testing.T, credits float64) string {
	t.Helper()
	apiUserSeq++
	uuid := fmt.Sprintf("api-test-uuid-%d", apiUserSeq)

	_, err := testServer.store.CreateUser(context.Background(), database.CreateUserParams{
		UUID:             uuid,
		Email:            fmt.Sprintf("api-encrypted-email-%d", apiUserSeq),
		IP:               fmt.Sprintf("api-hashed-ip-%d", apiUserSeq),
		AvailableCredits: credits,
	})
	require.NoError(t, err)
	return uuid
}

func userBalance(t *testing.T, uuid string) float64 {
	t.Helper()
	user, err := testServer.store.GetUserByUUID(context.Background(), uuid)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.AvailableCredits
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	cfg := &config.Config{
		Auth:              config.AuthConfig{Token: testAuthToken},
		Encryption:        config.EncConfig{Key: "test-encryption-key"},
		FreePromptCredits: 3000,
	}

	cipher, err := cryptox.New(cfg.Encryption.Key)
	if err != nil {
		log.Fatalf("Could not build cipher: %s", err)
	}

	testServer = NewServer(cfg, database.NewStore(pool), cipher, &stubGateway{})

	os.Exit(m.Run())
}
