package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/foxy-spend/internal/classification"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// ReviewStats counts what the user did with reviewed items.
type ReviewStats struct {
	Accepted int
	Edited   int
	Deleted  int
}

// Prompter walks the user through a parsed batch before it is saved.
type Prompter struct {
	writer      io.Writer
	reader      *LineReader
	progressBar *progressbar.ProgressBar
	stats       ReviewStats
	statsMutex  sync.RWMutex
}

// NewCLIPrompter creates a prompter reading answers from reader and writing to writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ReviewBatch shows the batch and returns the items the user wants to keep.
// The returned batch may be empty when everything was discarded.
func (p *Prompter) ReviewBatch(ctx context.Context, batch model.ParsedBatch, source string) (model.ParsedBatch, error) {
	if len(batch.Items) == 0 {
		return batch, nil
	}

	title := fmt.Sprintf("%d gasto(s) detectado(s)", len(batch.Items))
	if source != "" {
		title += " · " + source
	}
	if _, err := fmt.Fprintln(p.writer, RenderBox(title, RenderBatch(batch))); err != nil {
		return model.ParsedBatch{}, fmt.Errorf("failed to write batch: %w", err)
	}

	if _, err := fmt.Fprintln(p.writer, "  [A] Guardar todo\n  [R] Revisar uno a uno\n  [D] Descartar todo"); err != nil {
		return model.ParsedBatch{}, fmt.Errorf("failed to write options: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Opción [A/R/D]", []string{"a", "r", "d"})
	if err != nil {
		return model.ParsedBatch{}, err
	}

	switch choice {
	case "a":
		p.addStats(ReviewStats{Accepted: len(batch.Items)})
		return batch.Clone(), nil
	case "d":
		p.addStats(ReviewStats{Deleted: len(batch.Items)})
		if _, err := fmt.Fprintln(p.writer, FormatWarning(fmt.Sprintf("Descartados %d gastos", len(batch.Items)))); err != nil {
			slog.Warn("Failed to write discard message", "error", err)
		}
		return model.NewBatch(nil), nil
	default:
		return p.reviewEach(ctx, batch)
	}
}

func (p *Prompter) reviewEach(ctx context.Context, batch model.ParsedBatch) (model.ParsedBatch, error) {
	p.initProgressBar(len(batch.Items))
	defer p.finishProgress()

	kept := make([]model.ParsedExpense, 0, len(batch.Items))
	for i, item := range batch.Items {
		if _, err := fmt.Fprintf(p.writer, "\n[%d/%d] %s\n", i+1, len(batch.Items), FormatItem(item)); err != nil {
			return model.ParsedBatch{}, fmt.Errorf("failed to write item: %w", err)
		}

		reviewed, keep, err := p.reviewItem(ctx, item)
		if err != nil {
			return model.ParsedBatch{}, err
		}
		if keep {
			kept = append(kept, reviewed)
		}
		p.updateProgress()
	}

	return model.NewBatch(kept), nil
}

func (p *Prompter) reviewItem(ctx context.Context, item model.ParsedExpense) (model.ParsedExpense, bool, error) {
	edited := false
	for {
		choice, err := p.promptChoice(ctx, "[A]ceptar [C]ategoría [I]mporte [B]orrar", []string{"a", "c", "i", "b"})
		if err != nil {
			return item, false, err
		}

		switch choice {
		case "a":
			if edited {
				item.Confidence = 1
				p.addStats(ReviewStats{Edited: 1})
			} else {
				p.addStats(ReviewStats{Accepted: 1})
			}
			return item, true, nil
		case "b":
			p.addStats(ReviewStats{Deleted: 1})
			return item, false, nil
		case "c":
			category, err := p.promptCategory(ctx)
			if err != nil {
				return item, false, err
			}
			item.Category = category
			edited = true
		case "i":
			amount, err := p.promptAmount(ctx)
			if err != nil {
				return item, false, err
			}
			item.Amount = amount
			edited = true
		}

		if _, err := fmt.Fprintln(p.writer, "  "+FormatItem(item)); err != nil {
			slog.Warn("Failed to write edited item", "error", err)
		}
	}
}

func (p *Prompter) promptCategory(ctx context.Context) (model.Category, error) {
	categories := model.AllCategories()
	for i, c := range categories {
		if _, err := fmt.Fprintf(p.writer, "  %d. %s\n", i+1, c); err != nil {
			return "", fmt.Errorf("failed to write categories: %w", err)
		}
	}

	for {
		input, err := p.prompt(ctx, "Categoría (número o nombre)")
		if err != nil {
			return "", err
		}

		var n int
		if _, scanErr := fmt.Sscanf(input, "%d", &n); scanErr == nil && n >= 1 && n <= len(categories) {
			return categories[n-1], nil
		}
		if c, ok := model.ParseCategory(input); ok {
			return c, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Categoría desconocida")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

func (p *Prompter) promptAmount(ctx context.Context) (decimal.Decimal, error) {
	for {
		input, err := p.prompt(ctx, "Importe en euros")
		if err != nil {
			return decimal.Zero, err
		}
		if d, ok := classification.ExtractAmount(input); ok {
			return d, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatError("Importe no válido")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.prompt(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Opción no válida. Inténtalo de nuevo.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

func (p *Prompter) prompt(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.reader.ReadLine(ctx)
	if errors.Is(err, ErrInputCancelled) {
		return "", ctx.Err()
	}
	return input, err
}

// Close releases the input reader.
func (p *Prompter) Close() {
	p.reader.Close()
}

// Stats returns what the user did so far.
func (p *Prompter) Stats() ReviewStats {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()
	return p.stats
}

func (p *Prompter) addStats(delta ReviewStats) {
	p.statsMutex.Lock()
	defer p.statsMutex.Unlock()
	p.stats.Accepted += delta.Accepted
	p.stats.Edited += delta.Edited
	p.stats.Deleted += delta.Deleted
}

func (p *Prompter) initProgressBar(total int) {
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[yellow][bold]Revisando...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *Prompter) updateProgress() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (p *Prompter) finishProgress() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		slog.Warn("Failed to write newline", "error", err)
	}
	p.progressBar = nil
}

// ShowSaved reports the saved expenses and the review tally.
func (p *Prompter) ShowSaved(expenses []model.Expense, feedback string) {
	stats := p.Stats()

	var b strings.Builder
	for _, e := range expenses {
		fmt.Fprintf(&b, "%s %s · %s\n", SuccessIcon, model.FormatEUR(e.AmountCents), e.Category)
	}
	if stats.Edited+stats.Deleted > 0 {
		fmt.Fprintf(&b, "\n%s Editados: %d · Borrados: %d\n", ChartIcon, stats.Edited, stats.Deleted)
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\n%s", feedback)
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Guardado", strings.TrimRight(b.String(), "\n"))); err != nil {
		slog.Warn("Failed to write saved box", "error", err)
	}
}

// Ask prompts for one free-form line. It shares the prompter's input, so callers
// reading utterances and reviewing batches never race for the same stream.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	return p.prompt(ctx, prompt)
}
