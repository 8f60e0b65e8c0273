//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSalecastWithMySQL tests the salecast CLI with a MySQL run-history backend.
func TestSalecastWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "salecast",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/salecast?parseTime=true", host, port.Port())
	runPipelineAgainstBackend(t, "mysql", connStr)
}

// TestSalecastWithPostgres tests the salecast CLI with a PostgreSQL run-history backend.
func TestSalecastWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runPipelineAgainstBackend(t, "postgresql", connStr)
}

// runPipelineAgainstBackend exercises the CLI end to end with run tracking
// pointed at the given database backend.
func runPipelineAgainstBackend(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("SALECAST_HISTORY_BACKEND", backend)
	_ = os.Setenv("SALECAST_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SALECAST_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("SALECAST_HISTORY_DB_CONNECT") }()

	workDir := t.TempDir()
	dataFile := filepath.Join(workDir, "sales.csv")

	// Write a synthetic history
	err := runSalecastCommand(t, workDir, "sample", dataFile)
	require.NoError(t, err)

	// Clear any stale history
	err = runSalecastCommand(t, workDir, "history", "clear")
	require.NoError(t, err)

	// Run the pipeline with a short horizon to keep the test fast
	err = runSalecastCommand(t, workDir, "run", dataFile,
		"--horizon", "30", "--test-days", "30", "--models", "decompose", "--quiet")
	require.NoError(t, err)

	// Run status to verify the store is reachable after the run
	err = runSalecastCommand(t, workDir, "history", "status")
	require.NoError(t, err)

	// Export the accumulated history to Parquet
	err = runSalecastCommand(t, workDir, "history", "export",
		"--output-file", filepath.Join(workDir, "history.parquet"))
	require.NoError(t, err)
}

func runSalecastCommand(t *testing.T, workDir string, args ...string) error {
	salecastPath := getSalecastBinary()
	cmd := exec.Command(salecastPath, args...)
	cmd.Dir = workDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
