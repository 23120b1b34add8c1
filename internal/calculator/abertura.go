// Package calculator builds the aggregate summaries the dashboard
// consumes, chiefly the "Abertura de Porteira" due-date table.
package calculator

import (
	"fmt"
	"math"
	"time"

	"vigilacore/internal/cycle"
	"vigilacore/internal/reference"
	"vigilacore/internal/store"
)

// AberturaRow one reason-code line of the abertura table. Numeric cells
// are nil (not zero) when the month has no underlying data at all;
// zero means the month has data but this reason is clear.
type AberturaRow struct {
	Razao      string `json:"razao"` // "RZ 01".."RZ 18"
	Data       string `json:"data"`  // due date dd/mm/yyyy, or "--/--"
	OSB        *int   `json:"osb"`
	CNV        *int   `json:"cnv"`
	Quantidade *int   `json:"quantidade"`
	Atraso     *int   `json:"atraso"` // 0/1 lateness flag
}

// AberturaTotals column sums of a month table, nil under no data.
type AberturaTotals struct {
	OSB        *int `json:"osb"`
	CNV        *int `json:"cnv"`
	Quantidade *int `json:"quantidade"`
	Atraso     *int `json:"atraso"`
}

// AberturaMonth the full 18-row table for one month.
type AberturaMonth struct {
	Ano     int            `json:"year"`
	Mes     int            `json:"month"`
	Label   string         `json:"label"`
	HasData bool           `json:"hasData"`
	Rows    []AberturaRow  `json:"rows"`
	Totals  AberturaTotals `json:"totals"`
}

// AberturaComparison current month table next to the previous one.
type AberturaComparison struct {
	Atual    AberturaMonth `json:"atual"`
	Anterior AberturaMonth `json:"anterior"`
}

// AberturaBuilder assembles abertura tables from stored quantities and
// the reading calendar.
type AberturaBuilder struct {
	store        *store.Store
	calendar     *reference.CalendarCache
	calendarPath string
	now          func() time.Time
}

// NewAberturaBuilder creates a builder. calendarPath may point at a
// missing file; due dates then come back unknown.
func NewAberturaBuilder(s *store.Store, cal *reference.CalendarCache, calendarPath string) *AberturaBuilder {
	return &AberturaBuilder{
		store:        s,
		calendar:     cal,
		calendarPath: calendarPath,
		now:          time.Now,
	}
}

// BuildComparison builds the tables for the current and previous month.
func (b *AberturaBuilder) BuildComparison(ciclo, regiao string) (AberturaComparison, error) {
	now := b.now()
	curAno, curMes := now.Year(), int(now.Month())
	prevAno, prevMes := curAno, curMes-1
	if prevMes == 0 {
		prevAno, prevMes = curAno-1, 12
	}

	atual, err := b.BuildMonth(curAno, curMes, ciclo, regiao, true)
	if err != nil {
		return AberturaComparison{}, err
	}
	anterior, err := b.BuildMonth(prevAno, prevMes, ciclo, regiao, false)
	if err != nil {
		return AberturaComparison{}, err
	}
	return AberturaComparison{Atual: atual, Anterior: anterior}, nil
}

// BuildMonth builds the 18-row table for one month. isCurrent allows the
// monthly history to fall back to the live snapshot before the first
// refresh of the month.
//
// Lateness rule: atraso is 1 only when the reason still has pending
// quantity and the due date has passed or is unknown (an unknown date
// must not mask pending work). Zero pending always means atraso 0.
func (b *AberturaBuilder) BuildMonth(ano, mes int, ciclo, regiao string, isCurrent bool) (AberturaMonth, error) {
	quantities, err := b.store.AberturaMonthlyQuantities(ano, mes, ciclo, regiao, isCurrent)
	if err != nil {
		return AberturaMonth{}, err
	}

	today := b.now().Truncate(24 * time.Hour)

	type rawRow struct {
		razao  int
		data   string
		osb    int
		cnv    int
		qtd    int
		atraso int
	}

	raws := make([]rawRow, 0, 18)
	totalOSB, totalCNV, totalQtd, totalAtraso := 0, 0, 0, 0

	for r := 1; r <= 18; r++ {
		key := fmt.Sprintf("%02d", r)

		due, hasDue := b.calendar.DueDate(b.calendarPath, ano, mes, r)
		dataStr := "--/--"
		if hasDue {
			dataStr = due.Format("02/01/2006")
		}

		q := quantities[key]
		osb := int(math.Round(q.OSB))
		cnv := int(math.Round(q.CNV))
		qtd := int(math.Round(q.Quantidade))

		atraso := 0
		if qtd > 0 && (!hasDue || today.After(due)) {
			atraso = 1
		}

		totalOSB += osb
		totalCNV += cnv
		totalQtd += qtd
		totalAtraso += atraso
		raws = append(raws, rawRow{razao: r, data: dataStr, osb: osb, cnv: cnv, qtd: qtd, atraso: atraso})
	}

	hasData := totalQtd > 0

	month := AberturaMonth{
		Ano:     ano,
		Mes:     mes,
		Label:   fmt.Sprintf("%s %d", cycle.MonthName(time.Month(mes)), ano),
		HasData: hasData,
		Rows:    make([]AberturaRow, 0, 18),
	}

	for _, raw := range raws {
		row := AberturaRow{
			Razao: fmt.Sprintf("RZ %02d", raw.razao),
			Data:  raw.data,
		}
		if hasData {
			row.OSB = intPtr(raw.osb)
			row.CNV = intPtr(raw.cnv)
			row.Quantidade = intPtr(raw.qtd)
			row.Atraso = intPtr(raw.atraso)
		}
		month.Rows = append(month.Rows, row)
	}

	if hasData {
		month.Totals = AberturaTotals{
			OSB:        intPtr(totalOSB),
			CNV:        intPtr(totalCNV),
			Quantidade: intPtr(totalQtd),
			Atraso:     intPtr(totalAtraso),
		}
	}
	return month, nil
}

func intPtr(v int) *int {
	return &v
}
