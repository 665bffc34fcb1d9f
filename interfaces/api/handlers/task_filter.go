package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/pkg/utils"
)

const dateOnlyLayout = "2006-01-02"

// parseTaskFilter อ่าน query string ของ GET /tasks และ /tasks/assigned
// คืน []utils.ValidationError เมื่อค่าไม่ถูกต้อง
func parseTaskFilter(c *fiber.Ctx) (*dto.TaskFilter, []utils.ValidationError) {
	var query dto.TaskFilterQuery
	if err := c.QueryParser(&query); err != nil {
		return nil, utils.GetValidationErrors(err)
	}
	if err := utils.ValidateStruct(&query); err != nil {
		return nil, utils.GetValidationErrors(err)
	}

	filter := &dto.TaskFilter{}
	var problems []utils.ValidationError

	if query.IsCompleted != "" {
		completed := query.IsCompleted == "true"
		filter.IsCompleted = &completed
	}
	if query.Priority != "" {
		priority, _ := strconv.Atoi(query.Priority)
		filter.Priority = &priority
	}

	if query.DueDateFrom != "" {
		from, err := parseFilterDate(query.DueDateFrom, false)
		if err != nil {
			problems = append(problems, invalidDate("dueDateFrom"))
		} else {
			filter.DueDateFrom = &from
		}
	}
	if query.DueDateTo != "" {
		to, err := parseFilterDate(query.DueDateTo, true)
		if err != nil {
			problems = append(problems, invalidDate("dueDateTo"))
		} else {
			filter.DueDateTo = &to
		}
	}

	// categoryIds=a,b หรือ categoryIds=a&categoryIds=b
	for _, raw := range c.Context().QueryArgs().PeekMulti("categoryIds") {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				problems = append(problems, utils.ValidationError{
					Field:   "categoryIds",
					Tag:     "uuid",
					Message: "categoryIds must contain valid UUIDs",
				})
				continue
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return filter, nil
}

// parseFilterDate รับ RFC3339 หรือ YYYY-MM-DD; วันที่อย่างเดียวของขอบบนนับถึงสิ้นวัน
func parseFilterDate(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func invalidDate(field string) utils.ValidationError {
	return utils.ValidationError{
		Field:   field,
		Tag:     "datetime",
		Message: field + " must be RFC3339 or YYYY-MM-DD",
	}
}
