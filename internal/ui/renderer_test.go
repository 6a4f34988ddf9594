package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/mmeshcher/billed/internal/bills"
	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/routes"
	"github.com/mmeshcher/billed/internal/session"
)

var employee = session.User{Type: session.TypeEmployee, Email: "a@a"}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func allByTestID(n *html.Node, id string) []*html.Node {
	var res []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if v, ok := attr(n, "data-testid"); ok && v == id {
				res = append(res, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return res
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func testViews() []model.BillView {
	return []model.BillView{
		{ID: "a", Date: "1 Mar. 21", Status: "En attente", Name: "hotel", FileURL: "https://cdn.tld/a.jpg?alt=media&token=1"},
		{ID: "b", Date: "1 Jan. 21", Status: "Accepté", Name: "train", FileURL: ""},
	}
}

func TestBills_RendersRowsInGivenOrder(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")

	markup, err := r.Bills(BillsPage{
		Layout: NewLayout(employee, p, routes.Bills),
		Data:   testViews(),
	}, p)
	require.NoError(t, err)

	doc := parse(t, markup)

	dates := allByTestID(doc, "bill-date")
	require.Len(t, dates, 2)
	assert.Equal(t, "1 Mar. 21", text(dates[0]))
	assert.Equal(t, "1 Jan. 21", text(dates[1]))

	eyes := allByTestID(doc, "icon-eye")
	require.Len(t, eyes, 2)
	url, _ := attr(eyes[0], bills.BillURLAttr)
	assert.Equal(t, "https://cdn.tld/a.jpg?alt=media&token=1", url)
	href, _ := attr(eyes[0], "href")
	assert.Equal(t, "?proof=a", href)

	assert.Contains(t, markup, "Mes notes de frais")
	require.Len(t, allByTestID(doc, "btn-new-bill"), 1)

	icons := allByTestID(doc, "icon-window")
	require.Len(t, icons, 1)
	class, _ := attr(icons[0], "class")
	assert.Contains(t, class, "active-icon")

	modal := allByTestID(doc, "modaleFile")
	require.Len(t, modal, 1)
	class, _ = attr(modal[0], "class")
	assert.NotContains(t, class, "show")
}

func TestBills_IconNotHighlightedForAdmin(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")

	markup, err := r.Bills(BillsPage{
		Layout: NewLayout(session.User{Type: session.TypeAdmin}, p, routes.Bills),
	}, p)
	require.NoError(t, err)

	icons := allByTestID(parse(t, markup), "icon-window")
	require.Len(t, icons, 1)
	_, ok := attr(icons[0], "class")
	assert.False(t, ok)
}

func TestBills_ErrorIndicator(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")

	for _, msg := range []string{"Erreur 404 : ressource introuvable", "Erreur 500 : erreur interne du serveur"} {
		markup, err := r.Bills(BillsPage{
			Layout: NewLayout(employee, p, routes.Bills),
			Data:   testViews(),
			Error:  msg,
		}, p)
		require.NoError(t, err)

		doc := parse(t, markup)
		nodes := allByTestID(doc, "error-message")
		require.Len(t, nodes, 1)
		assert.Equal(t, msg, text(nodes[0]))
		assert.Empty(t, allByTestID(doc, "bill-date"))
	}
}

func TestBills_ModalShownWithProof(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")
	views := testViews()

	modal := &Modal{}
	c := bills.NewController(bills.Options{Modal: modal, ModalWidth: 900})
	c.HandleClickIconEye(EyeIcon(views[0]))

	markup, err := r.Bills(BillsPage{
		Layout: NewLayout(employee, p, routes.Bills),
		Data:   views,
		Modal:  modal,
	}, p)
	require.NoError(t, err)

	doc := parse(t, markup)
	m := allByTestID(doc, "modaleFile")
	require.Len(t, m, 1)
	class, _ := attr(m[0], "class")
	assert.Contains(t, class, "show")

	imgs := allByTestID(doc, "proof-image")
	require.Len(t, imgs, 1)
	src, _ := attr(imgs[0], "src")
	assert.Equal(t, views[0].FileURL, src)
	width, _ := attr(imgs[0], "width")
	assert.Equal(t, "450", width)
}

func TestBills_ModalPlaceholderWithoutProof(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")
	views := testViews()

	modal := &Modal{}
	bills.NewController(bills.Options{Modal: modal}).HandleClickIconEye(EyeIcon(views[1]))

	markup, err := r.Bills(BillsPage{
		Layout: NewLayout(employee, p, routes.Bills),
		Data:   views,
		Modal:  modal,
	}, p)
	require.NoError(t, err)

	doc := parse(t, markup)
	assert.Empty(t, allByTestID(doc, "proof-image"))
	require.Len(t, allByTestID(doc, "proof-placeholder"), 1)
}

func TestNewBill_RendersForm(t *testing.T) {
	r := newTestRenderer(t)
	p := i18n.New("fr")

	markup, err := r.NewBill(NewBillPage{Layout: NewLayout(employee, p, routes.NewBill)}, p)
	require.NoError(t, err)

	doc := parse(t, markup)
	require.Len(t, allByTestID(doc, "form-new-bill"), 1)

	icons := allByTestID(doc, "icon-mail")
	require.Len(t, icons, 1)
	class, _ := attr(icons[0], "class")
	assert.Contains(t, class, "active-icon")
	assert.Contains(t, markup, "Nouvelle note de frais")
}

func TestEyeIcon(t *testing.T) {
	icon := EyeIcon(model.BillView{FileURL: "https://cdn.tld/x.png"})
	assert.Equal(t, "https://cdn.tld/x.png", icon.GetAttribute(bills.BillURLAttr))
	assert.Equal(t, "icon-eye", icon.GetAttribute("data-testid"))
	assert.Empty(t, icon.GetAttribute("missing"))
}
