package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Mavunaku/cvp3sea/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// transformRefs rewrites $ref from #/definitions/ to #/components/schemas/
// and converts Swagger 2.0 parameters to OpenAPI 3.0 format
func transformRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return transformParameter(v)
			}
		}

		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = transformRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

// transformParameter converts a non-body Swagger 2.0 parameter to OpenAPI 3.0 format
func transformParameter(param map[string]interface{}) map[string]interface{} {
	if param["in"] == "body" {
		return param
	}

	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = transformRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}

	return result
}

// liftRequestBodies moves Swagger 2.0 body and formData parameters of each
// operation into an OpenAPI 3.0 requestBody
func liftRequestBodies(paths map[string]interface{}) {
	for _, item := range paths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, op := range operations {
			operation, ok := op.(map[string]interface{})
			if !ok {
				continue
			}
			params, ok := operation["parameters"].([]interface{})
			if !ok {
				continue
			}

			kept := make([]interface{}, 0, len(params))
			formProps := make(map[string]interface{})
			for _, p := range params {
				param, ok := p.(map[string]interface{})
				if !ok {
					kept = append(kept, p)
					continue
				}
				switch param["in"] {
				case "body":
					operation["requestBody"] = map[string]interface{}{
						"required": param["required"],
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{"schema": transformRefs(param["schema"])},
						},
					}
				case "formData":
					prop := map[string]interface{}{"type": param["type"]}
					if param["type"] == "file" {
						prop = map[string]interface{}{"type": "string", "format": "binary"}
					}
					formProps[param["name"].(string)] = prop
				default:
					kept = append(kept, p)
				}
			}

			if len(formProps) > 0 {
				operation["requestBody"] = map[string]interface{}{
					"content": map[string]interface{}{
						"multipart/form-data": map[string]interface{}{
							"schema": map[string]interface{}{"type": "object", "properties": formProps},
						},
					},
				}
			}
			operation["parameters"] = kept
		}
	}
}

// OpenAPI3Handler serves the swagger spec converted to OpenAPI 3.0 with the given servers
func OpenAPI3Handler(servers []Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			log.Error().Err(err).Msg("Failed to read swagger doc")
			return NewInternalError(c, "Failed to read swagger doc")
		}

		var swagger2 map[string]interface{}
		if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
			log.Error().Err(err).Msg("Failed to parse swagger doc")
			return NewInternalError(c, "Failed to parse swagger doc")
		}

		info, _ := swagger2["info"].(map[string]interface{})

		paths, _ := swagger2["paths"].(map[string]interface{})
		if paths == nil {
			paths = map[string]interface{}{}
		}
		liftRequestBodies(paths)
		transformedPaths := transformRefs(paths).(map[string]interface{})

		components := make(map[string]interface{})
		if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
			components["securitySchemes"] = secDefs
		}
		if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
			components["schemas"] = transformRefs(definitions)
		}

		return c.JSON(http.StatusOK, OpenAPI3Spec{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    servers,
			Paths:      transformedPaths,
			Components: components,
		})
	}
}
