package headset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIClient is the one-shot request/response path to the channel server,
// separate from the persistent socket. No retry or backoff: a failed request
// is reported once and dropped.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

func (ac *APIClient) request(method, endpoint string, query url.Values, body interface{}) ([]byte, *HeadsetError) {
	reqURL := ac.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, NewJSONError(err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, NewConfigError(err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HeadsetClient-Go/1.0")

	resp, err := ac.httpClient.Do(req)
	if err != nil {
		return nil, NewConnectionError(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUnknownError(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMsg := string(respBody)
		if errMsg == "" {
			errMsg = http.StatusText(resp.StatusCode)
		}
		return nil, NewHeadsetError(errMsg, fmt.Sprintf("HTTP_%d", resp.StatusCode)).
			AddDetail("status_code", resp.StatusCode)
	}

	return respBody, nil
}

// SubtitleResponse is the server's acknowledgement for subtitle pushes.
type SubtitleResponse struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	Original   string `json:"original"`
	Translated string `json:"translated,omitempty"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

// LangGroups reports how many clients sit in each language group.
type LangGroups struct {
	Groups        map[string]int `json:"lang_groups"`
	PiClientID    *string        `json:"pi_client_id"`
	ActiveClients int            `json:"active_clients"`
}

// SubtitleBroadcast pushes one subtitle line to every connected client,
// translated per language group on the server.
func (ac *APIClient) SubtitleBroadcast(text, sourceLang, sourceClientID string) Result[*SubtitleResponse] {
	if text == "" {
		return Err[*SubtitleResponse](NewConfigError("subtitle text cannot be empty"))
	}

	body := map[string]string{
		"text":             text,
		"source_lang":      sourceLang,
		"source_client_id": sourceClientID,
	}
	resp, err := ac.request("POST", "/subtitle", nil, body)
	if err != nil {
		return Err[*SubtitleResponse](err)
	}

	var result SubtitleResponse
	if jerr := json.Unmarshal(resp, &result); jerr != nil {
		return Err[*SubtitleResponse](NewJSONError(jerr.Error()))
	}
	return Ok(&result)
}

// SubtitleOne pushes one subtitle line to a single target client.
func (ac *APIClient) SubtitleOne(text, sourceLang, targetLang, fromClientID, toClientID string) Result[*SubtitleResponse] {
	if text == "" || toClientID == "" {
		return Err[*SubtitleResponse](NewConfigError("subtitle text and target client id are required"))
	}

	body := map[string]string{
		"text":           text,
		"source_lang":    sourceLang,
		"target_lang":    targetLang,
		"from_client_id": fromClientID,
		"to_client_id":   toClientID,
	}
	resp, err := ac.request("POST", "/subtitle_one", nil, body)
	if err != nil {
		return Err[*SubtitleResponse](err)
	}

	var result SubtitleResponse
	if jerr := json.Unmarshal(resp, &result); jerr != nil {
		return Err[*SubtitleResponse](NewJSONError(jerr.Error()))
	}
	return Ok(&result)
}

// GetLangGroups fetches the server's current language-group census.
func (ac *APIClient) GetLangGroups() Result[*LangGroups] {
	resp, err := ac.request("GET", "/debug/lang-groups", nil, nil)
	if err != nil {
		return Err[*LangGroups](err)
	}

	var result LangGroups
	if jerr := json.Unmarshal(resp, &result); jerr != nil {
		return Err[*LangGroups](NewJSONError(jerr.Error()))
	}
	return Ok(&result)
}

// HealthCheck asks the server whether it is up.
func (ac *APIClient) HealthCheck() Result[map[string]interface{}] {
	resp, err := ac.request("GET", "/", nil, nil)
	if err != nil {
		return Err[map[string]interface{}](err)
	}

	var result map[string]interface{}
	if jerr := json.Unmarshal(resp, &result); jerr != nil {
		return Err[map[string]interface{}](NewJSONError(jerr.Error()))
	}
	return Ok(result)
}

// Utility methods
func (ac *APIClient) SetBaseURL(baseURL string) {
	ac.baseURL = baseURL
}

func (ac *APIClient) SetTimeout(timeout time.Duration) {
	ac.httpClient.Timeout = timeout
}
