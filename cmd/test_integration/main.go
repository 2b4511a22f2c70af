package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("KGRAPH_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")
	title := fmt.Sprintf("smoke-%d", time.Now().Unix())

	fmt.Println("1. Merging candidates...")
	payload := map[string]any{
		"documents": []map[string]any{{
			"document": map[string]any{"path": title + ".md", "title": title, "content": "Alice studies graph theory."},
			"concepts": []map[string]any{{"name": "Graph Theory", "type": "idea"}, {"name": "Alice", "type": "person"}},
			"category": "Mathematics",
			"dates":    []string{time.Now().Format("2006-01-02")},
			"tags":     []string{"smoke"},
		}},
		"relations": []map[string]any{{"source": "Alice", "target": "Graph Theory", "type": "STUDIES", "reason": "stated"}},
	}
	if !sendRequest(baseURL, http.MethodPost, "/merge", payload) {
		fmt.Println("FAILED: Merge")
		os.Exit(1)
	}
	fmt.Println("PASSED: Merge")

	fmt.Println("2. Reading concepts...")
	if !sendRequest(baseURL, http.MethodGet, "/concepts", nil) {
		fmt.Println("FAILED: Concepts")
		os.Exit(1)
	}
	fmt.Println("PASSED: Concepts")

	fmt.Println("3. Reading stats...")
	if !sendRequest(baseURL, http.MethodGet, "/stats", nil) {
		fmt.Println("FAILED: Stats")
		os.Exit(1)
	}
	fmt.Println("PASSED: Stats")
}

func sendRequest(baseURL, method, endpoint string, payload any) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}
