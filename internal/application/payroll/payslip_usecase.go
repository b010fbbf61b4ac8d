package payroll

import (
	"context"
	"fmt"
	"strings"
)

// PayslipUseCase genera el comprobante de pago de un rol.
type PayslipUseCase struct {
	payroll   *UseCase
	generator PayslipGenerator
}

// NewPayslipUseCase construye el caso de uso.
func NewPayslipUseCase(payroll *UseCase, generator PayslipGenerator) *PayslipUseCase {
	return &PayslipUseCase{payroll: payroll, generator: generator}
}

// DownloadPayslip devuelve (pdfBytes, filename) del rol indicado.
func (uc *PayslipUseCase) DownloadPayslip(ctx context.Context, id string) ([]byte, string, error) {
	line, err := uc.payroll.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GeneratePayslip(ctx, line)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("rol_%s_%s.pdf", safeFilePart(line.EmployeeID), line.PeriodEnd.Format("2006-01-02"))
	return pdfBytes, filename, nil
}

// safeFilePart deja solo letras ASCII, dígitos, guion, punto y guion bajo.
func safeFilePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			return r
		}
		return '_'
	}, s)
}
