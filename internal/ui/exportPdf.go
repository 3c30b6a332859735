package ui

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/export"
)

// SaveToFile writes the current board to writer and closes it.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser, f export.Format) error {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}()

	var err error
	if f == export.PNG {
		var data []byte
		if data, err = b.board.ExportSnapshot(); err == nil {
			_, err = writer.Write(data)
		}
	} else {
		err = export.Encode(writer, b.board.Image(), f)
	}
	if err != nil {
		log.Printf("[EXPORT] Saving %s failed: %v", writer.URI(), err)
		b.SetStatus("Error saving file")
		return err
	}
	b.SetStatus("Saved " + writer.URI().Name())
	return nil
}

// SaveToSink stores the board in sink under a timestamped name.
func (b *BoardWidget) SaveToSink(sink export.FileSink) (string, error) {
	name := fmt.Sprintf("sketch-%s", time.Now().Format("20060102-150405"))
	path, err := sink.Save(name, b.board.Image())
	if err != nil {
		log.Printf("[EXPORT] %v", err)
		b.SetStatus("Error saving file")
		return "", err
	}
	b.SetStatus("Saved " + path)
	return path, nil
}

// ExportButtons returns the quick-save button and one "save as" button
// per export format.
func ExportButtons(win fyne.Window, b *BoardWidget, sink export.FileSink) []fyne.CanvasObject {
	quick := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), func() {
		b.SaveToSink(sink)
	})
	objects := []fyne.CanvasObject{quick}
	for _, f := range []export.Format{export.PNG, export.PDF, export.BMP} {
		f := f
		objects = append(objects, widget.NewButtonWithIcon(f.String(), theme.DownloadIcon(), func() {
			showExportDialog(win, b, f)
		}))
	}
	return objects
}

func showExportDialog(win fyne.Window, b *BoardWidget, f export.Format) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		if err := b.SaveToFile(writer, f); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName("sketch" + f.Ext())
	d.SetFilter(storage.NewExtensionFileFilter([]string{f.Ext()}))
	d.Show()
}
