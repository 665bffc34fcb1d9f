package dto

import (
	"task-manager-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsActive:    user.IsActive,
		CreatedDate: user.CreatedAt,
	}
}

func CategoryToCategoryResponse(category *models.Category) *CategoryResponse {
	if category == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
	}
}

func CategoriesToCategoryResponses(categories []*models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = *CategoryToCategoryResponse(category)
	}
	return responses
}

// TaskToDetailResponse expects User, AssignedToUser and Categories to be preloaded.
func TaskToDetailResponse(task *models.Task) *TaskDetailResponse {
	if task == nil {
		return nil
	}
	resp := &TaskDetailResponse{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		IsCompleted:       task.IsCompleted,
		CreatedDate:       task.CreatedAt,
		DueDate:           task.DueDate,
		Priority:          task.Priority,
		CreatedByUserID:   task.UserID,
		CreatedByUsername: task.User.Username,
		AssignedToUserID:  task.AssignedToUserID,
		Categories:        make([]CategoryResponse, 0, len(task.Categories)),
	}
	if task.AssignedToUser != nil {
		username := task.AssignedToUser.Username
		resp.AssignedToUsername = &username
	}
	for i := range task.Categories {
		resp.Categories = append(resp.Categories, *CategoryToCategoryResponse(&task.Categories[i]))
	}
	return resp
}

func TasksToDetailResponses(tasks []*models.Task) []TaskDetailResponse {
	responses := make([]TaskDetailResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToDetailResponse(task)
	}
	return responses
}
