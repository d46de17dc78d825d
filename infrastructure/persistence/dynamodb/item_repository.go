// Package dynamodb implements the item repository against a managed
// key-value table keyed by itemId, with a secondary index on userId.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itemstore-backend/application/ports"
	"itemstore-backend/domain/item"
	"itemstore-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ItemRepository implements ports.ItemRepository using DynamoDB
type ItemRepository struct {
	client         *dynamodb.Client
	tableName      string
	ownerIndexName string
	logger         *zap.Logger
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(client *dynamodb.Client, tableName, ownerIndexName string, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		client:         client,
		tableName:      tableName,
		ownerIndexName: ownerIndexName,
		logger:         logger,
	}
}

// itemRecord is the DynamoDB item structure. Timestamps are stored as
// RFC3339 strings.
type itemRecord struct {
	ItemID      string  `dynamodbav:"itemId"`
	UserID      string  `dynamodbav:"userId"`
	Name        string  `dynamodbav:"name"`
	Description string  `dynamodbav:"description"`
	Price       float64 `dynamodbav:"price"`
	Category    string  `dynamodbav:"category"`
	CreatedAt   string  `dynamodbav:"createdAt"`
	UpdatedAt   string  `dynamodbav:"updatedAt"`
}

func toRecord(it *item.Item) itemRecord {
	return itemRecord{
		ItemID:      it.ItemID,
		UserID:      it.UserID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Category:    it.Category,
		CreatedAt:   utils.FormatRFC3339(it.CreatedAt),
		UpdatedAt:   utils.FormatRFC3339(it.UpdatedAt),
	}
}

func fromRecord(rec itemRecord) (*item.Item, error) {
	createdAt, err := utils.ParseRFC3339(rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid createdAt on item %s: %w", rec.ItemID, err)
	}
	updatedAt, err := utils.ParseRFC3339(rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updatedAt on item %s: %w", rec.ItemID, err)
	}
	return &item.Item{
		ItemID:      rec.ItemID,
		UserID:      rec.UserID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Category:    rec.Category,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Save persists a new item unconditionally
func (r *ItemRepository) Save(ctx context.Context, it *item.Item) error {
	av, err := attributevalue.MarshalMap(toRecord(it))
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to put item",
			zap.String("itemID", it.ItemID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

// GetByID reads one item by its identifier
func (r *ItemRepository) GetByID(ctx context.Context, itemID string) (*item.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"itemId": &types.AttributeValueMemberS{Value: itemID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ports.ErrItemNotFound
	}

	var rec itemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return fromRecord(rec)
}

// ListByOwner queries the owner index for every item belonging to userID
func (r *ItemRepository) ListByOwner(ctx context.Context, userID string) ([]item.Item, error) {
	keyCond := expression.Key("userId").Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	items := []item.Item{}
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.ownerIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query items by owner: %w", err)
		}

		for _, raw := range out.Items {
			var rec itemRecord
			if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			it, err := fromRecord(rec)
			if err != nil {
				return nil, err
			}
			items = append(items, *it)
		}

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return items, nil
}

// Update merges the supplied fields and refreshes updatedAt, conditioned on
// the stored owner still being ownerID. The condition closes the window
// between the caller's ownership check and this write.
func (r *ItemRepository) Update(ctx context.Context, itemID, ownerID string, changes item.Changes, updatedAt time.Time) (*item.Item, error) {
	update := expression.Set(
		expression.Name("updatedAt"),
		expression.Value(utils.FormatRFC3339(updatedAt)),
	)
	if changes.Name != nil {
		update = update.Set(expression.Name("name"), expression.Value(*changes.Name))
	}
	if changes.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*changes.Description))
	}
	if changes.Price != nil {
		update = update.Set(expression.Name("price"), expression.Value(*changes.Price))
	}
	if changes.Category != nil {
		update = update.Set(expression.Name("category"), expression.Value(*changes.Category))
	}

	cond := expression.Name("itemId").AttributeExists().
		And(expression.Name("userId").Equal(expression.Value(ownerID)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"itemId": &types.AttributeValueMemberS{Value: itemID},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ports.ErrConditionFailed
		}
		r.logger.Error("Failed to update item",
			zap.String("itemID", itemID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	var rec itemRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated item: %w", err)
	}

	return fromRecord(rec)
}

// Delete removes the item, conditioned on the stored owner still being ownerID
func (r *ItemRepository) Delete(ctx context.Context, itemID, ownerID string) error {
	cond := expression.Name("itemId").AttributeExists().
		And(expression.Name("userId").Equal(expression.Value(ownerID)))

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition expression: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"itemId": &types.AttributeValueMemberS{Value: itemID},
		},
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ports.ErrConditionFailed
		}
		r.logger.Error("Failed to delete item",
			zap.String("itemID", itemID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
