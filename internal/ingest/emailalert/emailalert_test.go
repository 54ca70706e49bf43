package emailalert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const alertCards = `<html><body>
<p>New arrivals at Happy Tails!</p>
<div data-dog-id="7"
     data-name="Mochi"
     data-breed="Shiba"
     data-age="1 year"
     data-size="small"
     data-energy="high"
     data-play-styles="chase, tug"
     data-potty-trained="yes"
     data-good-with-cats="no">
  <img src="https://happytails.org/photos/7.jpg">
</div>
<div class="dog-card" data-dog-id="8">
  <h3>Bruno</h3>
</div>
<div data-dog-id="9"></div>
</body></html>`

func TestParseAlertHTML(t *testing.T) {
	leads, err := ParseAlertHTML(strings.NewReader(alertCards), "alerts@happytails.org")
	require.NoError(t, err)
	require.Len(t, leads, 2) // nameless card is dropped

	mochi := leads[0]
	require.Equal(t, "Mochi", mochi.Name)
	require.Equal(t, "Shiba", mochi.Breed)
	require.Equal(t, "1 year", mochi.AgeText)
	require.Equal(t, []string{"chase", "tug"}, mochi.PlayStyles)
	require.Equal(t, "yes", mochi.Traits["potty_trained"])
	require.Equal(t, "no", mochi.Traits["good_with_cats"])
	require.Equal(t, "emailalert", mochi.Source)
	require.Equal(t, "emailalert:happytails:7", mochi.SourceID)
	require.Equal(t, "happytails", mochi.ShelterName)
	require.Equal(t, "https://happytails.org/photos/7.jpg", mochi.PhotoURL)

	bruno := leads[1]
	require.Equal(t, "Bruno", bruno.Name)
	require.Equal(t, "emailalert:happytails:8", bruno.SourceID)
}

func TestShelterFromSender(t *testing.T) {
	require.Equal(t, "happytails", shelterFromSender("alerts@happytails.org"))
	require.Equal(t, "pawsco", shelterFromSender("No-Reply@PawsCo.rescue.example"))
	require.Equal(t, "unknown", shelterFromSender(""))
}

func TestContainsAnyCI(t *testing.T) {
	require.True(t, containsAnyCI("New Dogs This Week", []string{"new dogs"}))
	require.True(t, containsAnyCI("Adoptable pups", []string{"kittens", "PUPS"}))
	require.False(t, containsAnyCI("Newsletter", []string{"new dogs"}))
	require.False(t, containsAnyCI("anything", nil))
}

func TestHTMLPartSinglePart(t *testing.T) {
	raw := "From: alerts@happytails.org\r\n" +
		"Subject: New dogs\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><div data-dog-id=\"1\" data-name=\"Rex\"></div></body></html>\r\n"

	body := htmlPart([]byte(raw))
	require.Contains(t, body, `data-name="Rex"`)
}

func TestHTMLPartMultipartQuotedPrintable(t *testing.T) {
	raw := "From: alerts@happytails.org\r\n" +
		"Subject: New dogs\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=\"xyz\"\r\n" +
		"\r\n" +
		"--xyz\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"New arrivals, open in an HTML mail client.\r\n" +
		"--xyz\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"<div data-dog-id=3D\"7\" data-name=3D\"Mochi\"></div>\r\n" +
		"--xyz--\r\n"

	body := htmlPart([]byte(raw))
	require.Contains(t, body, `data-name="Mochi"`)

	leads, err := ParseAlertHTML(strings.NewReader(body), "alerts@happytails.org")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, "Mochi", leads[0].Name)
}

func TestHTMLPartMissingOrBroken(t *testing.T) {
	require.Empty(t, htmlPart(nil))
	require.Empty(t, htmlPart([]byte("not a mail message")))

	plain := "From: a@b.c\r\nContent-Type: text/plain\r\n\r\nhello\r\n"
	require.Empty(t, htmlPart([]byte(plain)))
}
