package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/utils"
	ws "farmstay-server/websocket"
)

// RegisterTaskRoutes registers task board routes
func RegisterTaskRoutes(router *gin.RouterGroup) {
	router.GET("/tasks", listTasks)
	router.GET("/tasks/:id", getTask)
	router.POST("/tasks", createTask)
	router.PUT("/tasks/:id", updateTask)
	router.PATCH("/tasks/:id/status", updateTaskStatus)
	router.POST("/tasks/:id/updates", addTaskUpdate)
	router.DELETE("/tasks/:id", deleteTask)
}

type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uint  `json:"assignee_id"`
	RoomID      *uint  `json:"room_id"`
	TreeID      *uint  `json:"tree_id"`
	DueDate     string `json:"due_date"`
}

func listTasks(c *gin.Context) {
	query := database.DB.Model(&models.Task{}).
		Preload("Assignee").
		Preload("Room").
		Preload("Tree")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		query = query.Where("assignee_id = ?", assignee)
	}

	var tasks []models.Task
	if err := query.Order("due_date ASC NULLS LAST, priority DESC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func getTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var task models.Task
	if err := database.DB.
		Preload("Assignee").
		Preload("Room").
		Preload("Tree").
		Preload("Updates").
		Preload("Updates.Author").
		First(&task, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := buildTask(c, req)
	if !ok {
		return
	}

	if err := database.DB.Create(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	publish(ws.EventTaskUpdated, task)

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func updateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var existing models.Task
	if err := database.DB.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := buildTask(c, req)
	if !ok {
		return
	}

	task.ID = existing.ID
	task.Status = existing.Status
	task.CreatedAt = existing.CreatedAt

	if err := database.DB.Save(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	publish(ws.EventTaskUpdated, task)

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// updateTaskStatus moves a task through the board workflow
func updateTaskStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next := models.TaskStatus(req.Status)
	if next != models.TaskStatusTodo && next != models.TaskStatusDoing && next != models.TaskStatusDone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown task status"})
		return
	}

	var task models.Task
	if err := database.DB.First(&task, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if !task.CanTransitionTo(next) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid_transition",
			"message": "Task cannot move from " + string(task.Status) + " to " + string(next),
		})
		return
	}

	if err := database.DB.Model(&task).Update("status", next).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		return
	}
	task.Status = next

	publish(ws.EventTaskUpdated, task)

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// addTaskUpdate appends a progress note authored by the current user
func addTaskUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task
	if err := database.DB.First(&task, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	update := models.TaskUpdate{
		TaskID:   task.ID,
		AuthorID: c.GetUint("user_id"),
		Note:     req.Note,
	}

	if err := database.DB.Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add task update"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"update": update})
}

func deleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := database.DB.Where("task_id = ?", id).Delete(&models.TaskUpdate{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	if err := database.DB.Delete(&models.Task{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// buildTask validates references and the room XOR tree rule
func buildTask(c *gin.Context, req taskRequest) (*models.Task, bool) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		RoomID:      req.RoomID,
		TreeID:      req.TreeID,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	task.Status = models.TaskStatusTodo

	if err := task.ValidateResource(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	if req.DueDate != "" {
		due, err := utils.ParseDate(req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		task.DueDate = &due
	}

	if req.AssigneeID != nil {
		var assignee models.StaffUser
		if err := database.DB.First(&assignee, *req.AssigneeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
			return nil, false
		}
	}
	if req.RoomID != nil {
		var room models.Room
		if err := database.DB.First(&room, *req.RoomID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room not found"})
			return nil, false
		}
	}
	if req.TreeID != nil {
		var tree models.Tree
		if err := database.DB.First(&tree, *req.TreeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tree not found"})
			return nil, false
		}
	}

	return task, true
}
