package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

const (
	BaseURL = "https://api.openweathermap.org/data/2.5/weather"

	// Fixed fallback line when the lookup fails; the morning reminder
	// must still go out.
	unavailable = "Wetterdaten konnten nicht geladen werden."
)

// Client fetches current conditions from OpenWeather, with German
// descriptions and metric units.
type Client struct {
	apiKey        string
	city          string
	includeFunny  bool
	includeOutfit bool
	baseURL       string
	httpClient    *http.Client
}

// NewClient creates a weather client for the given city.
func NewClient(apiKey, city string, includeFunny, includeOutfit bool) *Client {
	return &Client{
		apiKey:        apiKey,
		city:          city,
		includeFunny:  includeFunny,
		includeOutfit: includeOutfit,
		baseURL:       BaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured returns true if the client has an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type apiResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Forecast returns a short German weather summary, optionally followed
// by a joke and a clothing tip. Lookup failures come back as a fixed
// sentence, never as an error.
func (c *Client) Forecast(ctx context.Context) string {
	params := url.Values{}
	params.Set("q", c.city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "de")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return unavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unavailable
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || len(data.Weather) == 0 {
		return unavailable
	}

	description := strings.ToLower(data.Weather[0].Description)
	temp := int(math.Round(data.Main.Temp))

	result := fmt.Sprintf("%s, %d°C", capitalize(description), temp)

	var extra []string
	if c.includeFunny {
		extra = append(extra, funnyComment(description, temp))
	}
	if c.includeOutfit {
		extra = append(extra, "Hinweis: "+outfitTip(description, temp))
	}
	if len(extra) > 0 {
		result += "\n" + strings.Join(extra, "\n")
	}
	return result
}

// funnyComment picks a joke line matching the conditions.
func funnyComment(description string, temp int) string {
	switch {
	case strings.Contains(description, "regen"):
		return "☔ Kostenlos duschen heute – ganz ohne Handtuch!"
	case strings.Contains(description, "wolke"):
		return "☁ Bestes Wetter, um alles auf die Wolken zu schieben."
	case strings.Contains(description, "sonnig"), strings.Contains(description, "klar"):
		return "😎 Sonnenbrillenmodus: aktiviert."
	case temp > 28:
		return "🔥 Zeit, eins mit dem Grill zu werden."
	case temp < 5:
		return "❄ Extra Kaffee mitnehmen. Und vielleicht eine zweite Jacke."
	default:
		return "🌈 Wetter passt zu allem – außer zu Entscheidungen."
	}
}

// outfitTip suggests clothing for the conditions.
func outfitTip(description string, temp int) string {
	switch {
	case strings.Contains(description, "regen"):
		return "Vergiss den Regenschirm nicht und zieh eine wasserfeste Jacke an."
	case strings.Contains(description, "wolke"):
		return "Ein Pullover oder eine leichte Jacke könnte sinnvoll sein."
	case strings.Contains(description, "sonnig"), strings.Contains(description, "klar"):
		return "Denk an Sonnencreme und eine Sonnenbrille!"
	case temp > 28:
		return "Leichte Kleidung und viel Wasser sind heute angesagt."
	case temp < 5:
		return "Zieh dich warm an – Mütze, Schal und Handschuhe nicht vergessen."
	default:
		return "Am besten im Zwiebellook anziehen – so bist du flexibel."
	}
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
