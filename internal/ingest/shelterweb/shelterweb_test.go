package shelterweb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/util"
)

const listingHTML = `<!doctype html>
<html><body>
<div class="dogs">
  <div data-dog-id="101"
       data-name="Biscuit"
       data-breed="Lab mix"
       data-sex="male"
       data-age="2 years"
       data-size="medium"
       data-energy="moderate"
       data-play-styles="fetch, tug"
       data-potty-trained="yes"
       data-good-with-kids="yes"
       data-good-with-cats="no"
       data-shedding="moderate"
       data-barking="quiet"
       data-max-alone-hours="6-8 hours">
    <a href="/dogs/101">Biscuit</a>
    <img src="/photos/101.jpg">
  </div>
  <article class="pet">
    <h3>Luna</h3>
    <span class="breed">Husky</span>
    <span class="age">8 months</span>
    <a href="/dogs/luna-202">profile</a>
  </article>
  <div data-dog-id="101" data-name="Biscuit Duplicate"></div>
  <div data-dog-id="303"></div>
</div>
</body></html>`

func TestFetchParsesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer srv.Close()

	s := New(Config{Shelters: []config.Shelter{
		{Slug: "happy-tails", Name: "Happy Tails", URL: srv.URL + "/adopt"},
	}}, util.NewHostLimiter(100, 10))

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "shelterweb", res.Source)
	require.Len(t, res.Leads, 2) // duplicate id and nameless card are dropped

	biscuit := res.Leads[0]
	require.Equal(t, "Biscuit", biscuit.Name)
	require.Equal(t, "Lab mix", biscuit.Breed)
	require.Equal(t, "2 years", biscuit.AgeText)
	require.Equal(t, []string{"fetch", "tug"}, biscuit.PlayStyles)
	require.Equal(t, "yes", biscuit.Traits["potty_trained"])
	require.Equal(t, "no", biscuit.Traits["good_with_cats"])
	require.Equal(t, "6-8 hours", biscuit.MaxAloneText)
	require.Equal(t, "shelterweb:happy-tails:101", biscuit.SourceID)
	require.Equal(t, "Happy Tails", biscuit.ShelterName)
	require.Equal(t, srv.URL+"/dogs/101", biscuit.ProfileURL)
	require.Equal(t, srv.URL+"/photos/101.jpg", biscuit.PhotoURL)

	luna := res.Leads[1]
	require.Equal(t, "Luna", luna.Name)
	require.Equal(t, "Husky", luna.Breed)
	require.Equal(t, "8 months", luna.AgeText)
	// no data-dog-id, so the profile URL tail becomes the id
	require.Equal(t, "shelterweb:happy-tails:luna-202", luna.SourceID)
}

func TestFetchSurvivesDownShelter(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div data-dog-id="1" data-name="Rex"></div>`))
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	s := New(Config{Shelters: []config.Shelter{
		{Slug: "down", Name: "Down", URL: down.URL},
		{Slug: "up", Name: "Up", URL: up.URL},
	}}, nil)

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Leads, 1)
	require.Equal(t, "Rex", res.Leads[0].Name)
}

func TestIDFromProfileURL(t *testing.T) {
	require.Equal(t, "101", idFromProfileURL("https://x.org/dogs/101"))
	require.Equal(t, "101", idFromProfileURL("https://x.org/dogs/101/"))
	require.Equal(t, "", idFromProfileURL(""))
}
