package service

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"profile-backend/internal/domains/profile/model"
)

const (
	skillsSheetName   = "Top skills"
	projectsSheetName = "Projects"
)

func (s *profileService) BuildSkillsWorkbook(items []model.SkillCount) (*excelize.File, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{it.Skill, it.Count})
	}
	return buildWorkbook(skillsSheetName, []string{"Skill", "Count"}, rows)
}

func (s *profileService) BuildProjectsWorkbook(items []model.ProjectMatch) (*excelize.File, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.ProfileName,
			it.Project.Title,
			it.Project.Description,
			it.Project.When,
			strings.Join(it.Project.Skills, ", "),
			it.Project.Links.GitHub,
		})
	}
	headers := []string{"Profile", "Title", "Description", "When", "Skills", "GitHub"}
	return buildWorkbook(projectsSheetName, headers, rows)
}

// buildWorkbook writes a bold header row followed by one row per entry.
func buildWorkbook(sheetName string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", lastCol, headerStyle)
	}

	// Data rows start at row 2
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
