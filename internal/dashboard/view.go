package dashboard

import (
	"github.com/samber/lo"

	"github.com/mtlprog/invest/internal/domain"
	"github.com/mtlprog/invest/internal/format"
)

// Class names shared with the stylesheet.
const (
	ClassApp           = "app"
	ClassHeader        = "header"
	ClassMain          = "main"
	ClassDashboard     = "dashboard"
	ClassPortfolioList = "portfolio-list"
	ClassPortfolioCard = "portfolio-card"
)

const (
	TitleApp        = "Investment Platform"
	TitlePortfolios = "Portfolios"
)

// View is the structural output of one render pass.
type View struct {
	Class  string `json:"class"`
	Header Header `json:"header"`
	Main   Main   `json:"main"`
}

type Header struct {
	Class string `json:"class"`
	Title string `json:"title"`
}

type Main struct {
	Class     string  `json:"class"`
	Dashboard Section `json:"dashboard"`
}

type Section struct {
	Class string `json:"class"`
	Title string `json:"title"`
	List  List   `json:"list"`
}

type List struct {
	Class string `json:"class"`
	Cards []Card `json:"cards"`
}

// Card shows one portfolio. Key carries the portfolio ID.
type Card struct {
	Key     int    `json:"key"`
	Class   string `json:"class"`
	Title   string `json:"title"`
	Balance string `json:"balance"`
}

// Render builds the view for portfolios, one card per record in order.
func Render(portfolios []domain.Portfolio) View {
	cards := lo.Map(portfolios, func(p domain.Portfolio, _ int) Card {
		return Card{
			Key:     p.ID,
			Class:   ClassPortfolioCard,
			Title:   p.Name,
			Balance: BalanceText(p),
		}
	})

	return View{
		Class:  ClassApp,
		Header: Header{Class: ClassHeader, Title: TitleApp},
		Main: Main{
			Class: ClassMain,
			Dashboard: Section{
				Class: ClassDashboard,
				Title: TitlePortfolios,
				List:  List{Class: ClassPortfolioList, Cards: cards},
			},
		},
	}
}

// BalanceText is the card line for p, e.g. "Balance: $10,000".
func BalanceText(p domain.Portfolio) string {
	return "Balance: " + format.Currency(p.Balance)
}
