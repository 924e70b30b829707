package campus_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/unidesk/campus/pkg/campussdk"
)

/*
 * Common constants and helper functions for campus service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "campus-test:latest"

	adminUsername = "registrar"
	adminPassword = "Registrar123!"
	tokenSecret   = "e2e-token-secret-0123456789abcdef"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Campus Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Campus Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/campus/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// defaultEnv returns the container environment most tests run with. Rate
// limits are relaxed so that rapid test requests do not trip the production
// profiles; rate limiting itself has a dedicated test.
func defaultEnv() map[string]string {
	return map[string]string{
		"CAMPUS_ADMIN_USERNAME": adminUsername,
		"CAMPUS_ADMIN_PASSWORD": adminPassword,
		"CAMPUS_TOKEN_SECRET":   tokenSecret,
		"CAMPUS_DATABASE_FILE":  "/tmp/campus.db",
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",

		"RATELIMIT_STRICT_REQUESTS":    "1000",
		"RATELIMIT_STRICT_WINDOW_SEC":  "60",
		"RATELIMIT_STRICT_BURST":       "1000",
		"RATELIMIT_LENIENT_REQUESTS":   "1000",
		"RATELIMIT_LENIENT_WINDOW_SEC": "60",
		"RATELIMIT_LENIENT_BURST":      "1000",
	}
}

// setupCampusContainer starts the campus service in a container and returns
// the base URL. Extra environment entries override the defaults.
func setupCampusContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := defaultEnv()
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// loginClient creates a client and performs an admin login for the given uid.
func loginClient(t *testing.T, baseURL, uid string) *campussdk.Client {
	t.Helper()

	client := campussdk.NewClient(baseURL)
	resp, err := client.Login(t.Context(), adminUsername, adminPassword, uid)
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotEmpty(t, client.Token(), "login should capture the session cookie")

	return client
}

// requireAPIError asserts err is an APIError with the given code.
func requireAPIError(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	var apiErr *campussdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}
