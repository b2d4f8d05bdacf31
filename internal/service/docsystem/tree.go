package docsystem

import (
	"context"
	"log/slog"

	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo   docsysRepo.FolderRepository
	documentRepo docsysRepo.DocumentRepository
	logger       *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo docsysRepo.FolderRepository,
	documentRepo docsysRepo.DocumentRepository,
	logger *slog.Logger,
) docsysSvc.TreeService {
	return &treeService{
		folderRepo:   folderRepo,
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// GetTree builds the nested folder/document tree of a user
func (s *treeService) GetTree(ctx context.Context, userID string) (*models.TreeNode, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.ListSummaries(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree := BuildTree(folders, documents)

	s.logger.Debug("tree built",
		"user_id", userID,
		"folder_count", len(folders),
		"document_count", len(documents),
	)

	return tree, nil
}

// BuildTree nests folders by parent and places documents in their folder.
// Folders and documents whose parent is not in the list land at the root.
func BuildTree(folders []models.Folder, documents []models.DocumentSummary) *models.TreeNode {
	folderMap := make(map[string]*models.FolderTreeNode, len(folders))

	// First pass: create all folder nodes
	for _, folder := range folders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Documents: []models.DocumentTreeNode{},
		}
	}

	// Second pass: nest folders, keeping the input order
	rootFolders := make([]*models.FolderTreeNode, 0)
	for _, folder := range folders {
		node := folderMap[folder.ID]
		if folder.ParentID != nil {
			if parent, ok := folderMap[*folder.ParentID]; ok {
				parent.Folders = append(parent.Folders, node)
				continue
			}
		}
		rootFolders = append(rootFolders, node)
	}

	// Third pass: add documents to their folders
	rootDocuments := make([]models.DocumentTreeNode, 0)
	for _, doc := range documents {
		docNode := models.DocumentTreeNode{
			ID:        doc.ID,
			Title:     doc.Title,
			FolderID:  doc.FolderID,
			IsPinned:  doc.IsPinned,
			WordCount: doc.WordCount,
			UpdatedAt: doc.UpdatedAt,
		}
		if doc.FolderID != nil {
			if parent, ok := folderMap[*doc.FolderID]; ok {
				parent.Documents = append(parent.Documents, docNode)
				continue
			}
		}
		rootDocuments = append(rootDocuments, docNode)
	}

	return &models.TreeNode{
		Folders:   rootFolders,
		Documents: rootDocuments,
	}
}
