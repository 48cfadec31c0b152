package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
)

const (
	categoryNotFoundText = "Categoria não encontrada.\nUse /categorias para ver as categorias disponíveis."
	categoryAddUsageText = "Formato correto: /categoria_add [nome] [tipo]\nTipos: receita ou despesa\nExemplo: /categoria_add Pets despesa"
	categoryDelUsageText = "Formato correto: /categoria_del [nome]"
)

func (d *Dispatcher) listCategories(ctx context.Context, req Request) ([]string, error) {
	cats, err := d.deps.Categories.List(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var income, expense []string
	for _, c := range cats {
		if c.Kind == categorization.KindIncome {
			income = append(income, c.Name)
		} else {
			expense = append(expense, c.Name)
		}
	}

	var b strings.Builder
	b.WriteString("*📋 Suas Categorias:*\n\n")
	if len(income) > 0 {
		b.WriteString("*Receitas:*\n")
		for _, name := range income {
			fmt.Fprintf(&b, "• %s\n", name)
		}
		b.WriteString("\n")
	}
	if len(expense) > 0 {
		b.WriteString("*Despesas:*\n")
		for _, name := range expense {
			fmt.Fprintf(&b, "• %s\n", name)
		}
	}
	b.WriteString("\nPara adicionar: /categoria_add [nome] [tipo]\nPara remover: /categoria_del [nome]")
	return []string{b.String()}, nil
}

func (d *Dispatcher) addCategory(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 2 {
		return nil, usage(categoryAddUsageText)
	}
	kind, ok := categorization.ParseKind(req.Args[len(req.Args)-1])
	if !ok {
		return nil, usage(categoryAddUsageText)
	}

	cat, err := d.deps.Categories.Add(ctx, req.UserID, words(req.Args[:len(req.Args)-1]), kind)
	switch {
	case errors.Is(err, categorization.ErrCategoryExists):
		return nil, usage("Essa categoria já existe.")
	case errors.Is(err, categorization.ErrInvalidCategory):
		return nil, usage(categoryAddUsageText)
	case err != nil:
		return nil, fmt.Errorf("failed to add category: %w", err)
	}

	return []string{fmt.Sprintf("✅ Categoria criada!\n\nNome: %s\nTipo: %s", cat.Name, cat.Kind.Label())}, nil
}

func (d *Dispatcher) removeCategory(ctx context.Context, req Request) ([]string, error) {
	name := words(req.Args)
	if name == "" {
		return nil, usage(categoryDelUsageText)
	}

	cat, err := d.deps.Categories.Remove(ctx, req.UserID, name)
	if err != nil {
		if categoryNotFound(err) {
			return nil, usage(categoryNotFoundText)
		}
		return nil, fmt.Errorf("failed to remove category: %w", err)
	}
	return []string{"🗑️ Categoria removida: " + cat.Name}, nil
}
