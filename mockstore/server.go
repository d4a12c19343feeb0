package mockstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// progressCollection gets compare-and-swap treatment on writes.
const progressCollection = "progress"

type Server struct {
	DB *gorm.DB
}

// New builds the collection server. Any path segment is a valid collection;
// unknown ones are simply empty, the way json-server behaves.
func New(db *gorm.DB) *fiber.App {
	s := &Server{DB: db}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/:collection", s.list)
	app.Post("/:collection", s.create)
	app.Get("/:collection/:id", s.get)
	app.Put("/:collection/:id", s.replace)
	app.Patch("/:collection/:id", s.merge)
	app.Delete("/:collection/:id", s.remove)
	return app
}

func (s *Server) list(c *fiber.Ctx) error {
	var docs []Document
	if err := s.DB.Where("collection = ?", c.Params("collection")).
		Order("record_id").Find(&docs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	filters := c.Queries()
	out := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		record, err := decode(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if matches(record, filters) {
			out = append(out, json.RawMessage(doc.Data))
		}
	}
	return c.JSON(out)
}

func (s *Server) get(c *fiber.Ctx) error {
	doc, err := s.lookup(s.DB, c)
	if err != nil {
		return err
	}
	return sendRaw(c, fiber.StatusOK, doc.Data)
}

func (s *Server) create(c *fiber.Ctx) error {
	record, err := parseBody(c)
	if err != nil {
		return err
	}
	collection := c.Params("collection")

	var doc Document
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var maxID int
		tx.Model(&Document{}).Where("collection = ?", collection).
			Select("COALESCE(MAX(record_id), 0)").Scan(&maxID)

		record["id"] = maxID + 1
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		doc = Document{Collection: collection, RecordID: maxID + 1, Data: string(data)}
		return tx.Create(&doc).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return sendRaw(c, fiber.StatusCreated, doc.Data)
}

func (s *Server) replace(c *fiber.Ctx) error {
	record, err := parseBody(c)
	if err != nil {
		return err
	}
	return s.write(c, func(stored map[string]interface{}) map[string]interface{} {
		return record
	}, record)
}

func (s *Server) merge(c *fiber.Ctx) error {
	record, err := parseBody(c)
	if err != nil {
		return err
	}
	return s.write(c, func(stored map[string]interface{}) map[string]interface{} {
		for key, value := range record {
			stored[key] = value
		}
		return stored
	}, record)
}

// write applies an update inside a transaction. For the progress collection
// the incoming version must be exactly one ahead of the stored version, or
// the write comes back 409.
func (s *Server) write(c *fiber.Ctx, apply func(map[string]interface{}) map[string]interface{}, incoming map[string]interface{}) error {
	var data string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		doc, err := s.lookup(tx, c)
		if err != nil {
			return err
		}
		stored, err := decode(*doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if doc.Collection == progressCollection {
			if _, ok := incoming["version"]; ok && !versionAdvances(stored, incoming) {
				return fiber.NewError(fiber.StatusConflict, "stale version")
			}
		}

		updated := apply(stored)
		updated["id"] = doc.RecordID
		encoded, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		doc.Data = string(encoded)
		data = doc.Data
		return tx.Save(doc).Error
	})
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return fiberErr
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return sendRaw(c, fiber.StatusOK, data)
}

func (s *Server) remove(c *fiber.Ctx) error {
	doc, err := s.lookup(s.DB, c)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(&Document{}, doc.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return sendRaw(c, fiber.StatusOK, doc.Data)
}

func (s *Server) lookup(tx *gorm.DB, c *fiber.Ctx) (*Document, error) {
	recordID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "not found")
	}

	var doc Document
	err = tx.Where("collection = ? AND record_id = ?", c.Params("collection"), recordID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &doc, nil
}

func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	record := map[string]interface{}{}
	if err := json.Unmarshal(c.Body(), &record); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	return record, nil
}

func decode(doc Document) (map[string]interface{}, error) {
	record := map[string]interface{}{}
	err := json.Unmarshal([]byte(doc.Data), &record)
	return record, err
}

// matches applies json-server style equality filtering: every query param
// must equal the record's field, compared as strings.
func matches(record map[string]interface{}, filters map[string]string) bool {
	for field, want := range filters {
		value, ok := record[field]
		if !ok {
			return false
		}
		if formatValue(value) != want {
			return false
		}
	}
	return true
}

// formatValue renders a decoded JSON value the way it appears in a query
// string. Whole floats print without the trailing ".0".
func formatValue(value interface{}) string {
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}

// versionAdvances accepts a progress write only when the incoming version is
// exactly one ahead of the stored one. A record written without a version
// counts as version 0.
func versionAdvances(stored, incoming map[string]interface{}) bool {
	return number(incoming["version"]) == number(stored["version"])+1
}

func number(value interface{}) float64 {
	f, _ := value.(float64)
	return f
}

func sendRaw(c *fiber.Ctx, status int, data string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).SendString(data)
}
