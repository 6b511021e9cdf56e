package report

import (
	"fmt"
	"strings"

	"github.com/finvoy/ledger-notify/internal/models"
)

// PurchaseDetailCap is the maximum number of orders rendered per state
// section; anything beyond it collapses into a single "e mais N" line.
const PurchaseDetailCap = 10

const dateLayout = "02/01/2006"

var ruler = strings.Repeat("─", 30)

var purchaseStateLabels = map[string]string{
	models.PurchaseStateDraft:     "📝 Rascunho",
	models.PurchaseStateSent:      "📤 Enviado",
	models.PurchaseStateToApprove: "⏳ Aguardando Aprovação",
	models.PurchaseStateApproved:  "✅ Aprovado",
	models.PurchaseStateDone:      "✅ Recebido",
	models.PurchaseStateCancelled: "❌ Cancelado",
}

// PurchaseStateLabel translates a lifecycle state for display. Unknown
// states render as-is rather than being dropped.
func PurchaseStateLabel(state string) string {
	if label, ok := purchaseStateLabels[state]; ok {
		return label
	}
	return state
}

// Format renders a report as a single WhatsApp-ready text block. A nil or
// empty report yields "", meaning "nothing to send" rather than an error.
func Format(r *models.Report) string {
	if r == nil || r.EntryCount == 0 {
		return ""
	}
	switch r.Kind {
	case models.KindPayableToday:
		return formatPayables(r)
	case models.KindReceivableDue:
		return formatReceivables(r)
	case models.KindPurchaseActivity:
		return formatPurchases(r)
	}
	return ""
}

func formatPayables(r *models.Report) string {
	total := FormatCurrency(r.GrandTotal)

	var b strings.Builder
	b.WriteString("💰 *Contas a Pagar - Hoje*\n")
	fmt.Fprintf(&b, "📅 %s\n", r.AsOf.Format(dateLayout))
	fmt.Fprintf(&b, "📊 %d conta(s) | %d empresa(s)\n", r.EntryCount, r.GroupCount)
	fmt.Fprintf(&b, "💵 Total: %s\n\n", total)

	b.WriteString("*Resumo por Empresa:*\n")
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "• *%s*: %s (%d conta(s))\n", g.Key, FormatCurrency(g.Total), g.Count)
	}

	fmt.Fprintf(&b, "\n⚠️ Total: %s", total)
	return b.String()
}

func formatReceivables(r *models.Report) string {
	when := "amanhã"
	if r.DueToday {
		when = "hoje"
	}
	total := FormatCurrency(r.GrandTotal)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Contas a Receber - Vencimento %s*\n", strings.ToUpper(when))
	fmt.Fprintf(&b, "📅 Data: %s\n", r.AsOf.Format(dateLayout))
	fmt.Fprintf(&b, "💰 Total: %s\n", total)
	fmt.Fprintf(&b, "📊 Quantidade: %d conta(s)\n\n", r.EntryCount)

	b.WriteString("*Detalhes:*\n")
	b.WriteString(ruler + "\n")
	for i, line := range r.Groups[0].Lines {
		partner := line.Partner
		if partner == "" {
			partner = "N/A"
		}
		name := line.Name
		if name == "" {
			name = "N/A"
		}
		ref := ""
		if line.Ref != "" {
			ref = fmt.Sprintf(" (%s)", line.Ref)
		}
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, partner)
		fmt.Fprintf(&b, "   Doc: %s%s\n", name, ref)
		fmt.Fprintf(&b, "   Valor: %s\n\n", FormatCurrency(line.Amount))
	}
	b.WriteString(ruler + "\n")
	fmt.Fprintf(&b, "⚠️ Total a receber %s: %s", when, total)
	return b.String()
}

func formatPurchases(r *models.Report) string {
	total := FormatCurrency(r.GrandTotal)

	var b strings.Builder
	b.WriteString("🛒 *Compras Atualizadas - Hoje*\n")
	fmt.Fprintf(&b, "📅 Data: %s\n", r.AsOf.Format(dateLayout))
	fmt.Fprintf(&b, "📊 Total de compras: %d\n", r.EntryCount)
	fmt.Fprintf(&b, "💰 Valor total: %s\n\n", total)

	for _, g := range r.Groups {
		fmt.Fprintf(&b, "*%s: %d compra(s)*\n", PurchaseStateLabel(g.Key), g.Count)
		b.WriteString(ruler + "\n")

		shown := g.Lines
		if len(shown) > PurchaseDetailCap {
			shown = shown[:PurchaseDetailCap]
		}
		for i, line := range shown {
			partner := line.Partner
			if partner == "" {
				partner = "N/A"
			}
			name := line.Name
			if name == "" {
				name = "N/A"
			}
			fmt.Fprintf(&b, "%d. *%s*\n", i+1, name)
			fmt.Fprintf(&b, "   Fornecedor: %s\n", partner)
			if !line.Date.IsZero() {
				fmt.Fprintf(&b, "   Data: %s\n", line.Date.Format(dateLayout))
			}
			fmt.Fprintf(&b, "   Valor: %s\n\n", FormatCurrency(line.Amount))
		}
		if len(g.Lines) > PurchaseDetailCap {
			fmt.Fprintf(&b, "   ... e mais %d compra(s)\n\n", len(g.Lines)-PurchaseDetailCap)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "⚠️ Total: %s", total)
	return b.String()
}

// FormatPosting renders the single-document message the continuous monitor
// sends for each freshly posted entry.
func FormatPosting(p models.Posting) string {
	var b strings.Builder
	b.WriteString("🔔 *Novo Lançamento Contábil*\n")
	fmt.Fprintf(&b, "📄 %s\n", p.Name)
	if p.PartnerName != "" {
		fmt.Fprintf(&b, "👤 %s\n", p.PartnerName)
	}
	fmt.Fprintf(&b, "📅 Data: %s\n", p.Date.Format(dateLayout))
	if p.Ref != "" {
		fmt.Fprintf(&b, "🔖 Ref: %s\n", p.Ref)
	}
	fmt.Fprintf(&b, "💰 Valor: %s\n", FormatCurrency(p.AmountTotal))
	fmt.Fprintf(&b, "📌 Tipo: %s", p.MoveType)
	return b.String()
}
