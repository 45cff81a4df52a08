package handlers

import (
	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

func toPlaceInput(req dto.PlaceOrderRequest) usecase.PlaceOrderInput {
	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.LineItem{
			Name:      item.Name,
			UnitPrice: model.MinorAmount(item.Price),
			Quantity:  item.Quantity,
		})
	}

	in := usecase.PlaceOrderInput{
		Items:         items,
		Address:       model.Address(req.Address),
		PaymentMethod: req.PaymentMethod,
	}
	if req.Amount != nil {
		amount := model.MinorAmount(*req.Amount)
		in.Amount = &amount
	}
	return in
}

func toLineItems(items []model.LineItem) []dto.LineItem {
	out := make([]dto.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LineItem{Name: item.Name, Price: int64(item.UnitPrice), Quantity: item.Quantity})
	}
	return out
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Items:         toLineItems(order.Items),
		Amount:        order.Amount,
		Address:       dto.Address(order.Address),
		PaymentMethod: string(order.PaymentMethod),
		Payment:       order.Payment,
		Status:        string(order.Status),
		Date:          order.Date,
	}
}

func toOrderList(orders []model.Order) dto.OrderListResponse {
	data := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, toOrderResponse(o))
	}
	return dto.OrderListResponse{Success: true, Data: data}
}

func toFoodResponse(food model.Food) dto.FoodResponse {
	return dto.FoodResponse{
		ID:          food.ID,
		Name:        food.Name,
		Description: food.Description,
		Price:       food.Price,
		Category:    food.Category,
		Image:       food.Image,
	}
}
