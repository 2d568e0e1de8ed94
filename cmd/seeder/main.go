// Command seeder exercises a running API: it uploads a small league-history
// file to build a threshold model, then asks for an optimization of one team.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

const sampleSeasons = `team_name,season_year,made_playoffs,wins,losses,ties,R,HR,RBI,SB,AVG,W,K,SV_H,ERA,WHIP
Sluggers,2023,1,14,8,0,1021,301,985,112,0.268,88,1405,101,3.62,1.18
Aces,2023,1,13,9,0,958,262,930,131,0.264,95,1488,96,3.41,1.12
Grinders,2023,0,9,13,0,902,231,877,98,0.255,79,1301,84,4.08,1.27
Bombers,2023,0,8,14,0,940,288,951,74,0.251,71,1260,77,4.22,1.31
Sluggers,2024,1,15,7,0,1044,309,1002,105,0.271,90,1430,99,3.55,1.16
Aces,2024,0,10,12,0,935,249,901,126,0.259,92,1470,90,3.77,1.20
Grinders,2024,1,12,10,0,977,255,948,119,0.266,85,1392,108,3.49,1.15
Bombers,2024,0,7,15,0,912,281,940,69,0.249,70,1244,72,4.31,1.33
`

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	teamID := flag.Int64("team", 1, "team to optimize")
	budget := flag.Float64("budget", 40, "free-agent budget")
	scope := flag.String("scope", "both", "hitting, pitching or both")
	benchQuota := flag.Int("bench-quota", 0, "open bench slots reserved for hitters")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	client := &http.Client{Timeout: 60 * time.Second}

	summary, err := upload(client, *apiURL)
	if err != nil {
		log.Fatalw("Upload failed", "error", err)
	}
	log.Infow("Threshold model created",
		"model", summary.ModelID, "teams", summary.Teams, "playoff_teams", summary.PlayoffTeams)

	b := models.FlexFloat(*budget)
	req := models.OptimizationRequest{
		ModelID:    summary.ModelID,
		Budget:     &b,
		Scope:      models.Scope(*scope),
		BenchQuota: *benchQuota,
	}
	body, status, err := postJSON(client, fmt.Sprintf("%s/api/v1/teams/%d/optimize", *apiURL, *teamID), req)
	if err != nil {
		log.Fatalw("Optimize request failed", "error", err)
	}
	log.Infow("Optimize response", "status", status)
	fmt.Println(string(body))
	if status != http.StatusOK {
		os.Exit(1)
	}
}

func upload(client *http.Client, apiURL string) (*models.UploadSummary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Seeded playoff bar")
	mw.WriteField("description", "Two seasons of sample league history")
	part, err := mw.CreateFormFile("file", "seasons.csv")
	if err != nil {
		return nil, err
	}
	io.WriteString(part, sampleSeasons)
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := client.Post(apiURL+"/api/v1/thresholds/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("upload returned %s: %s", resp.Status, raw)
	}

	var summary models.UploadSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decode upload summary: %w", err)
	}
	return &summary, nil
}

func postJSON(client *http.Client, url string, payload interface{}) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}
