package knowledge

// BuiltinBase is a knowledge base shipped with the assistant.
type BuiltinBase struct {
	ID    Category `json:"id"`
	Title string   `json:"title"`
	Docs  []string `json:"docs"`
}

// Catalogue lists the regulations each knowledge base is built on.
func Catalogue() []BuiltinBase {
	return []BuiltinBase{
		{
			ID:    CategoryKB1,
			Title: CategoryKB1.Title(),
			Docs: []string{
				"Kết luận 228-KL/TW (31/12/2025) - Bộ máy & Chính quyền 2 cấp",
				"Báo cáo 613-BC/BTCTW (29/12/2025) - Hoạt động hệ thống chính trị",
				"Quyết định 368-QĐ/TW (08/9/2025) - Chức danh lãnh đạo",
				"Kết luận 195-KL/TW (26/9/2025) - Chính quyền 2 cấp",
				"Quyết định 294-QĐ/TW (26/5/2025) - Điều lệ Đảng",
				"Hướng dẫn 04-HD/TW (31/12/2024) - Quy chế bầu cử",
				"Quyết định 366-QĐ/TW (30/8/2025) - Đánh giá xếp loại",
			},
		},
		{
			ID:    CategoryKB2,
			Title: CategoryKB2.Title(),
			Docs: []string{
				"Chỉ thị 50-CT/TW (23/7/2025) - Sinh hoạt chi bộ",
				"Chỉ thị 51-CT/TW (08/8/2025) - Thẻ Đảng viên",
				"Hướng dẫn 31-HD/VPTW - Danh mục hồ sơ nghiệp vụ",
			},
		},
	}
}

// StarterQuestions are offered before the first question of a session.
func StarterQuestions() []string {
	return []string{
		"Hướng dẫn quy trình bầu cử Chi bộ tổ dân phố?",
		"Tiêu chuẩn đánh giá, xếp loại Đảng viên năm 2025?",
		"Nội dung sinh hoạt Chi bộ định kỳ theo Chỉ thị 50?",
		"Các bước quy trình kết nạp Đảng viên mới?",
	}
}
