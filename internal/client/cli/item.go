package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getMultiline is an indirection used to facilitate testing.
var getMultiline = GetMultiline

// List prints all items owned by the current user, newest first.
func (a *App) List(ctx context.Context) error {
	items, err := a.apiClient.ListItems(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items yet")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %s\n", item.ID, item.Title)
	}
	return nil
}

// Add prompts for a title and description and creates a new item.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.apiClient.CreateItem(ctx, title, description)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Created item %s\n", item.ID)
	return nil
}

// Show prompts for an item id and prints the item in full.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.apiClient.GetItem(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("ID:          %s\n", item.ID)
	fmt.Printf("Title:       %s\n", item.Title)
	fmt.Printf("Description: %s\n", item.Description)
	fmt.Printf("Created:     %s\n", item.CreatedAt.Local())
	fmt.Printf("Updated:     %s\n", item.UpdatedAt.Local())
	return nil
}

// Edit prompts for an item id and replacement fields and updates the item.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.apiClient.UpdateItem(ctx, id, title, description)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Updated item %s\n", item.ID)
	return nil
}

// Delete prompts for an item id and deletes the item.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.apiClient.DeleteItem(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Deleted")
	return nil
}

// Attach prompts for an item id and a local file path, obtains a presigned
// upload URL from the server and uploads the file to it.
func (a *App) Attach(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id", os.Stdout)
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	key, url, err := a.apiClient.GetPresignedPutURL(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.apiClient.UploadFile(ctx, url, path); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Uploaded attachment %s\n", key)
	return nil
}

// Fetch prompts for an item id and prints a presigned download URL for its
// attachment.
func (a *App) Fetch(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id", os.Stdout)
	if err != nil {
		return err
	}

	url, err := a.apiClient.GetPresignedGetURL(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println(url)
	return nil
}
