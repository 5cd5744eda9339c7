package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raymarcher/pkg/core"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id" yaml:"id"`                   // Unique identifier
	Name        string `json:"name" yaml:"name"`               // Scene name
	DisplayName string `json:"displayName" yaml:"displayName"` // Display name
	Description string `json:"description" yaml:"description"` // Optional description
	Group       string `json:"group" yaml:"group"`             // Grouping category
	Type        string `json:"type" yaml:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath" yaml:"filePath"`       // Path to the description (file type only)
	Variant     string `json:"variant" yaml:"variant"`         // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name" yaml:"name"`
	Scenes []SceneInfo `json:"scenes" yaml:"scenes"`
}

// sceneExtensions are the file extensions recognised as scene descriptions
var sceneExtensions = []string{".yaml", ".yml", ".json"}

// IsSceneFile reports whether a path looks like a scene description
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range sceneExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListSceneFiles scans dir for scene descriptions. A missing directory yields an empty list.
// Files with unreadable metadata are listed with fallback values and reported to logger.
func ListSceneFiles(dir string, logger core.Logger) ([]SceneInfo, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		filePath := filepath.Join(dir, entry.Name())
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			core.Warnf(logger, "failed to parse metadata for %s: %v\n", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a YAML
// scene file. JSON files carry no comments and get the filename fallbacks.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("file:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Unreadable files still get listed with fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata lives only in the leading comment block
		if !strings.HasPrefix(line, "#") {
			break
		}

		content, ok := strings.CutPrefix(line, "# ")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Variant:"):
			sceneInfo.Variant = strings.TrimSpace(strings.TrimPrefix(content, "Variant:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// BuiltinScenes returns the registry entries of the built-in scenes
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos = append(infos, info)
	}
	return infos
}

// ListAllScenes returns the built-in scenes and the files found in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string, logger core.Logger) ([]SceneGroup, error) {
	fileScenes, err := ListSceneFiles(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var groups []SceneGroup
	if builtins, exists := groupMap[builtinGroup]; exists {
		groups = append(groups, SceneGroup{Name: builtinGroup, Scenes: builtins})
	}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "menger-sponge" -> "Menger Sponge"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
